package client

import "strings"

// Filter is the dashboard filter bar. Empty or "all" disables a field.
type Filter struct {
	Search  string
	Brand   string
	Model   string
	Status  string
	Company string
	Sector  string
}

func matches(want, got string) bool {
	return want == "" || want == "all" || want == got
}

// FilterAssets keeps the assets matching every active field. Search looks
// in code, name and description, case-insensitively.
func FilterAssets(assets []Asset, f Filter) []Asset {
	search := strings.ToLower(f.Search)

	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Code), search) &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		if !matches(f.Brand, a.Brand) ||
			!matches(f.Model, a.Model) ||
			!matches(f.Status, a.Status) ||
			!matches(f.Company, a.Company) ||
			!matches(f.Sector, a.Sector) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (c *Client) Filter(f Filter) []Asset {
	return FilterAssets(c.Assets(), f)
}
