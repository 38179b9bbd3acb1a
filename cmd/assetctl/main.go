package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"asset-registry/internal/client"
	"asset-registry/internal/cnpj"

	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "assetctl",
		Usage: "Command-line client for the asset registry API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: client.BaseURLFromEnv(), Usage: "API base URL (env " + client.BaseURLEnv + ")"},
		},
		Commands: []*cli.Command{
			loginCommand(),
			assetsCommand(),
			addAssetCommand(),
			editAssetCommand(),
			summaryCommand(),
			brandsCommand(),
			addCompanyCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func newClient(c *cli.Command) *client.Client {
	return client.New(c.String("server"), nil)
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Check a demo account against the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			api := newClient(c)
			u, err := api.Login(ctx, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			printKV([][2]string{
				{"id", u.ID},
				{"email", u.Email},
				{"name", u.Name},
				{"role", u.Role},
			})
			return api.Logout(ctx)
		},
	}
}

func assetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "assets",
		Usage: "List assets, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "text in code, name or description"},
			&cli.StringFlag{Name: "brand"},
			&cli.StringFlag{Name: "model"},
			&cli.StringFlag{Name: "status", Usage: "active | inactive"},
			&cli.StringFlag{Name: "company"},
			&cli.StringFlag{Name: "sector"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			api := newClient(c)
			if err := api.Load(ctx); err != nil {
				return err
			}
			assets := api.Filter(client.Filter{
				Search:  c.String("search"),
				Brand:   c.String("brand"),
				Model:   c.String("model"),
				Status:  c.String("status"),
				Company: c.String("company"),
				Sector:  c.String("sector"),
			})
			if c.Bool("json") {
				return printJSON(assets)
			}
			printAssets(assets)
			return nil
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Totals and distributions of the registered assets",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
		Action: func(ctx context.Context, c *cli.Command) error {
			api := newClient(c)
			if err := api.Load(ctx); err != nil {
				return err
			}
			s := api.Summary()
			if c.Bool("json") {
				return printJSON(s)
			}
			printKV([][2]string{
				{"total", strconv.Itoa(s.Total)},
				{"ativos", strconv.Itoa(s.Active)},
				{"baixados", strconv.Itoa(s.Inactive)},
				{"empresas", strconv.Itoa(s.Companies)},
			})
			printCounts("marca", s.ByBrand)
			printCounts("empresa", s.ByCompany)
			printCounts("setor", s.BySector)
			printCounts("grupo", s.ByGroup)
			return nil
		},
	}
}

func brandsCommand() *cli.Command {
	return &cli.Command{
		Name:  "brands",
		Usage: "Brand management",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List brands",
				Action: func(ctx context.Context, c *cli.Command) error {
					api := newClient(c)
					if err := api.Load(ctx); err != nil {
						return err
					}
					rows := [][]string{}
					for _, b := range api.Brands() {
						rows = append(rows, []string{strconv.FormatUint(uint64(b.ID), 10), b.Name})
					}
					printTable([]string{"ID", "MARCA"}, rows)
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Register a brand",
				ArgsUsage: "<name>",
				Action: func(ctx context.Context, c *cli.Command) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("brand name is required")
					}
					if err := newClient(c).AddBrand(ctx, name); err != nil {
						return err
					}
					fmt.Printf("brand %q registered\n", name)
					return nil
				},
			},
		},
	}
}

func addCompanyCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-company",
		Usage: "Register a company; the CNPJ is checked before anything is sent",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "cnpj"},
			&cli.StringFlag{Name: "description"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			form := client.CompanyForm{
				Name:        c.String("name"),
				TaxID:       c.String("cnpj"),
				Description: c.String("description"),
			}
			if err := newClient(c).AddCompany(ctx, form); err != nil {
				return err
			}
			if form.TaxID != "" {
				fmt.Printf("company %q registered (CNPJ %s)\n", form.Name, cnpj.Mask(form.TaxID))
			} else {
				fmt.Printf("company %q registered\n", form.Name)
			}
			return nil
		},
	}
}
