package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"asset-registry/internal/client"

	"github.com/urfave/cli/v3"
)

func assetFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "code"},
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "brand"},
		&cli.StringFlag{Name: "model"},
		&cli.StringFlag{Name: "company"},
		&cli.StringFlag{Name: "sector"},
		&cli.StringFlag{Name: "group", Usage: "group name"},
		&cli.StringFlag{Name: "subgroup", Usage: "subgroup name, within --group or the current group"},
		&cli.StringFlag{Name: "status", Usage: "active | inactive"},
		&cli.StringFlag{Name: "location"},
		&cli.StringFlag{Name: "image", Usage: "image file to upload"},
	}
}

// applyFormFlags overwrites the form fields whose flags were given.
func applyFormFlags(ctx context.Context, api *client.Client, c *cli.Command, f *client.AssetForm) error {
	for flag, dst := range map[string]*string{
		"code":        &f.Code,
		"name":        &f.Name,
		"description": &f.Description,
		"brand":       &f.Brand,
		"model":       &f.Model,
		"company":     &f.Company,
		"sector":      &f.Sector,
		"status":      &f.Status,
		"location":    &f.Location,
	} {
		if c.IsSet(flag) {
			*dst = c.String(flag)
		}
	}

	if c.IsSet("group") {
		name := c.String("group")
		var groupID uint
		for _, g := range api.Groups() {
			if strings.EqualFold(g.Name, name) {
				groupID = g.ID
			}
		}
		if groupID == 0 {
			return fmt.Errorf("unknown group %q", name)
		}
		api.SetGroup(f, groupID)
	}

	if c.IsSet("subgroup") {
		name := c.String("subgroup")
		f.SubgroupID = 0
		for _, s := range api.SubgroupsOf(f.GroupID) {
			if strings.EqualFold(s.Name, name) {
				f.SubgroupID = s.ID
			}
		}
		if f.SubgroupID == 0 {
			return fmt.Errorf("subgroup %q is not part of the selected group", name)
		}
	}

	if c.IsSet("image") {
		path := c.String("image")
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		url, err := api.UploadImage(ctx, filepath.Base(path), file)
		if err != nil {
			return err
		}
		f.ImageURL = url
	}
	return nil
}

func addAssetCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-asset",
		Usage: "Register an asset; required fields and duplicates are checked first",
		Flags: assetFormFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			api := newClient(c)
			if err := api.Load(ctx); err != nil {
				return err
			}
			form := client.AssetForm{Status: client.StatusActive}
			if err := applyFormFlags(ctx, api, c, &form); err != nil {
				return err
			}
			id, err := api.AddAsset(ctx, form)
			if err != nil {
				return err
			}
			fmt.Printf("asset %d registered\n", id)
			return nil
		},
	}
}

func editAssetCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit-asset",
		Usage:     "Change fields of a registered asset",
		ArgsUsage: "<id>",
		Flags:     assetFormFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := strconv.ParseUint(c.Args().First(), 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("asset id is required")
			}
			api := newClient(c)
			if err := api.Load(ctx); err != nil {
				return err
			}
			asset, ok := api.AssetByID(uint(id))
			if !ok {
				return fmt.Errorf("asset %d not found", id)
			}
			form := client.FormFromAsset(asset)
			if err := applyFormFlags(ctx, api, c, &form); err != nil {
				return err
			}
			if err := api.UpdateAsset(ctx, asset.ID, form); err != nil {
				return err
			}
			fmt.Printf("asset %d updated\n", id)
			return nil
		},
	}
}
