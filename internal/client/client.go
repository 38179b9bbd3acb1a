// Package client is the dashboard data layer: it loads the asset list and
// every lookup list from the API, keeps them in memory, and re-fetches the
// affected list after each write.
package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"asset-registry/internal/dto"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	BaseURLEnv     = "ASSET_API_URL"
)

// BaseURLFromEnv returns $ASSET_API_URL, or DefaultBaseURL when unset.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultBaseURL
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Field      string `json:"field"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return e.Message
}

type Client struct {
	http *resty.Client
	log  *zap.Logger

	mu        sync.RWMutex
	assets    []Asset
	brands    []Brand
	companies []Company
	sectors   []Sector
	groups    []Group
	subgroups []Subgroup
	statuses  []Status
}

// New keeps cookies between calls so a login session carries over.
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, log: log}
}

func (c *Client) BaseURL() string { return c.http.BaseURL }

// get decodes a successful JSON answer into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(out).SetError(&APIError{}).Get(path)
	return c.check(resp, err, path)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	return c.check(resp, err, path)
}

func (c *Client) check(resp *resty.Response, err error, path string) error {
	if err != nil {
		c.log.Error("api call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.StatusCode = resp.StatusCode()
		c.log.Warn("api returned error",
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
			zap.String("error", apiErr.Message),
		)
		return apiErr
	}
	return nil
}

// Load fetches assets and every lookup list in parallel. Nothing is replaced
// unless all fetches succeed.
func (c *Client) Load(ctx context.Context) error {
	var (
		rows      []dto.AssetRow
		brands    []dto.BrandItem
		companies []dto.CompanyItem
		sectors   []dto.SectorItem
		groups    []dto.GroupItem
		subgroups []dto.SubgroupItem
		statuses  []dto.StatusItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.get(gctx, "/assets", &rows) })
	g.Go(func() error { return c.get(gctx, "/brands/list", &brands) })
	g.Go(func() error { return c.get(gctx, "/companies/list", &companies) })
	g.Go(func() error { return c.get(gctx, "/sectors/list", &sectors) })
	g.Go(func() error { return c.get(gctx, "/groups", &groups) })
	g.Go(func() error { return c.get(gctx, "/subgroups", &subgroups) })
	g.Go(func() error { return c.get(gctx, "/status", &statuses) })
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets = fromWireRows(rows)
	c.brands = mapBrands(brands)
	c.companies = mapCompanies(companies)
	c.sectors = mapSectors(sectors)
	c.groups = mapGroups(groups)
	c.subgroups = mapSubgroups(subgroups)
	c.statuses = mapStatuses(statuses)

	c.log.Debug("data loaded", zap.Int("assets", len(c.assets)))
	return nil
}

//
// ACCESSORS (copies)
//

func (c *Client) Assets() []Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Asset(nil), c.assets...)
}

func (c *Client) Brands() []Brand {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Brand(nil), c.brands...)
}

func (c *Client) Companies() []Company {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Company(nil), c.companies...)
}

func (c *Client) Sectors() []Sector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Sector(nil), c.sectors...)
}

func (c *Client) Groups() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Group(nil), c.groups...)
}

func (c *Client) Subgroups() []Subgroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Subgroup(nil), c.subgroups...)
}

// SubgroupsOf lists the subgroups belonging to groupID.
func (c *Client) SubgroupsOf(groupID uint) []Subgroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Subgroup
	for _, s := range c.subgroups {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out
}

func (c *Client) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Status(nil), c.statuses...)
}

func (c *Client) AssetByID(id uint) (Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

//
// LOOKUP MAPPING
//

func mapBrands(in []dto.BrandItem) []Brand {
	out := make([]Brand, 0, len(in))
	for _, b := range in {
		out = append(out, Brand{ID: b.ID, Name: b.Name})
	}
	return out
}

func mapCompanies(in []dto.CompanyItem) []Company {
	out := make([]Company, 0, len(in))
	for _, co := range in {
		out = append(out, Company{ID: co.ID, Name: co.Name, TaxID: co.TaxID, Description: co.Description})
	}
	return out
}

func mapSectors(in []dto.SectorItem) []Sector {
	out := make([]Sector, 0, len(in))
	for _, s := range in {
		out = append(out, Sector{ID: s.ID, Name: s.Name})
	}
	return out
}

func mapGroups(in []dto.GroupItem) []Group {
	out := make([]Group, 0, len(in))
	for _, g := range in {
		out = append(out, Group{ID: g.ID, Name: g.Name})
	}
	return out
}

func mapSubgroups(in []dto.SubgroupItem) []Subgroup {
	out := make([]Subgroup, 0, len(in))
	for _, s := range in {
		out = append(out, Subgroup{ID: s.ID, Name: s.Name, GroupID: s.GroupID, Description: s.Description})
	}
	return out
}

func mapStatuses(in []dto.StatusItem) []Status {
	out := make([]Status, 0, len(in))
	for _, s := range in {
		out = append(out, Status{ID: s.ID, Name: s.Name})
	}
	return out
}
