package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"asset-registry/internal/client"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printAssets(assets []client.Asset) {
	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.Code,
			a.Name,
			orDash(a.Brand),
			orDash(a.Company),
			orDash(a.Sector),
			orDash(strings.TrimSuffix(a.Group+" / "+a.Subgroup, " / ")),
			a.Status,
			orDash(a.Location),
		})
	}
	printTable([]string{"ID", "CODIGO", "NOME", "MARCA", "EMPRESA", "SETOR", "GRUPO", "STATUS", "ONDE ESTA"}, rows)
}

func printCounts(title string, counts []client.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\npor %s:\n", title)
	rows := make([][2]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, [2]string{orDash(c.Name), strconv.Itoa(c.Value)})
	}
	printKV(rows)
}
