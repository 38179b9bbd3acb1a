package client

import "sort"

type Count struct {
	Name  string
	Value int
}

type Summary struct {
	Total     int
	Active    int
	Inactive  int
	Companies int // distinct companies among the assets

	ByBrand   []Count // top 6
	ByCompany []Count
	BySector  []Count
	ByGroup   []Count
}

const topBrands = 6

func (c *Client) Summary() Summary {
	return Summarize(c.Assets())
}

func Summarize(assets []Asset) Summary {
	s := Summary{Total: len(assets)}

	brands := map[string]int{}
	companies := map[string]int{}
	sectors := map[string]int{}
	groups := map[string]int{}
	for _, a := range assets {
		if a.Active() {
			s.Active++
		} else {
			s.Inactive++
		}
		brands[a.Brand]++
		companies[a.Company]++
		sectors[a.Sector]++
		groups[a.Group]++
	}

	s.Companies = len(companies)
	s.ByBrand = ranked(brands)
	if len(s.ByBrand) > topBrands {
		s.ByBrand = s.ByBrand[:topBrands]
	}
	s.ByCompany = ranked(companies)
	s.BySector = ranked(sectors)
	s.ByGroup = ranked(groups)
	return s
}

// ranked sorts by count desc, then name.
func ranked(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, v := range m {
		out = append(out, Count{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
