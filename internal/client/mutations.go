package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"asset-registry/internal/cnpj"
	"asset-registry/internal/dto"
)

// Every write is followed by a full re-fetch of the list it touched.

func (c *Client) refreshAssets(ctx context.Context) error {
	var rows []dto.AssetRow
	if err := c.get(ctx, "/assets", &rows); err != nil {
		return err
	}
	c.mu.Lock()
	c.assets = fromWireRows(rows)
	c.mu.Unlock()
	return nil
}

func (c *Client) refreshBrands(ctx context.Context) error {
	var items []dto.BrandItem
	if err := c.get(ctx, "/brands/list", &items); err != nil {
		return err
	}
	c.mu.Lock()
	c.brands = mapBrands(items)
	c.mu.Unlock()
	return nil
}

func (c *Client) refreshCompanies(ctx context.Context) error {
	var items []dto.CompanyItem
	if err := c.get(ctx, "/companies/list", &items); err != nil {
		return err
	}
	c.mu.Lock()
	c.companies = mapCompanies(items)
	c.mu.Unlock()
	return nil
}

func (c *Client) refreshSectors(ctx context.Context) error {
	var items []dto.SectorItem
	if err := c.get(ctx, "/sectors/list", &items); err != nil {
		return err
	}
	c.mu.Lock()
	c.sectors = mapSectors(items)
	c.mu.Unlock()
	return nil
}

func (c *Client) refreshGroups(ctx context.Context) error {
	var items []dto.GroupItem
	if err := c.get(ctx, "/groups", &items); err != nil {
		return err
	}
	c.mu.Lock()
	c.groups = mapGroups(items)
	c.mu.Unlock()
	return nil
}

func (c *Client) refreshSubgroups(ctx context.Context) error {
	var items []dto.SubgroupItem
	if err := c.get(ctx, "/subgroups", &items); err != nil {
		return err
	}
	c.mu.Lock()
	c.subgroups = mapSubgroups(items)
	c.mu.Unlock()
	return nil
}

func idPath(base string, id uint) string { return fmt.Sprintf("%s/%d", base, id) }

//
// ASSETS
//

// AddAsset runs ValidateForm against the loaded list before sending.
func (c *Client) AddAsset(ctx context.Context, f AssetForm) (uint, error) {
	if err := c.ValidateForm(f, 0); err != nil {
		return 0, err
	}
	var created dto.CreatedAsset
	if err := c.send(ctx, http.MethodPost, "/assets", toWire(f), &created); err != nil {
		return 0, err
	}
	return created.ID, c.refreshAssets(ctx)
}

func (c *Client) UpdateAsset(ctx context.Context, id uint, f AssetForm) error {
	if err := c.ValidateForm(f, id); err != nil {
		return err
	}
	if err := c.send(ctx, http.MethodPut, idPath("/assets", id), toWire(f), nil); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteAsset(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/assets", id), nil, nil); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeactivateAsset(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodPatch, idPath("/assets", id)+"/deactivate", nil, nil); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

// UploadImage sends an image and returns the URL to store in AssetForm.ImageURL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("image", filename, r).
		SetResult(&out).
		SetError(&APIError{}).
		Post("/upload")
	if err := c.check(resp, err, "/upload"); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

//
// BRANDS / SECTORS / GROUPS
//

func (c *Client) AddBrand(ctx context.Context, name string) error {
	if err := c.send(ctx, http.MethodPost, "/brands", dto.BrandRequest{Name: name}, nil); err != nil {
		return err
	}
	return c.refreshBrands(ctx)
}

// UpdateBrand also re-fetches assets, whose rows carry the brand name.
func (c *Client) UpdateBrand(ctx context.Context, id uint, name string) error {
	if err := c.send(ctx, http.MethodPut, idPath("/brands", id), dto.BrandRequest{Name: name}, nil); err != nil {
		return err
	}
	if err := c.refreshBrands(ctx); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteBrand(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/brands", id), nil, nil); err != nil {
		return err
	}
	return c.refreshBrands(ctx)
}

func (c *Client) AddSector(ctx context.Context, name string) error {
	if err := c.send(ctx, http.MethodPost, "/sectors", dto.SectorRequest{Name: name}, nil); err != nil {
		return err
	}
	return c.refreshSectors(ctx)
}

func (c *Client) UpdateSector(ctx context.Context, id uint, name string) error {
	if err := c.send(ctx, http.MethodPut, idPath("/sectors", id), dto.SectorRequest{Name: name}, nil); err != nil {
		return err
	}
	if err := c.refreshSectors(ctx); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteSector(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/sectors", id), nil, nil); err != nil {
		return err
	}
	return c.refreshSectors(ctx)
}

func (c *Client) AddGroup(ctx context.Context, name string) error {
	if err := c.send(ctx, http.MethodPost, "/groups", dto.GroupRequest{Name: name}, nil); err != nil {
		return err
	}
	return c.refreshGroups(ctx)
}

func (c *Client) UpdateGroup(ctx context.Context, id uint, name string) error {
	if err := c.send(ctx, http.MethodPut, idPath("/groups", id), dto.GroupRequest{Name: name}, nil); err != nil {
		return err
	}
	if err := c.refreshGroups(ctx); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteGroup(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/groups", id), nil, nil); err != nil {
		return err
	}
	return c.refreshGroups(ctx)
}

//
// SUBGROUPS
//

type SubgroupForm struct {
	Name        string
	GroupID     uint
	Description string
}

func (f SubgroupForm) request() dto.SubgroupRequest {
	return dto.SubgroupRequest{Name: f.Name, GroupID: f.GroupID, Description: f.Description}
}

func (c *Client) AddSubgroup(ctx context.Context, f SubgroupForm) error {
	if f.GroupID == 0 {
		return &FormError{Missing: []string{"Grupo"}}
	}
	if err := c.send(ctx, http.MethodPost, "/subgroups", f.request(), nil); err != nil {
		return err
	}
	return c.refreshSubgroups(ctx)
}

func (c *Client) UpdateSubgroup(ctx context.Context, id uint, f SubgroupForm) error {
	if err := c.send(ctx, http.MethodPut, idPath("/subgroups", id), f.request(), nil); err != nil {
		return err
	}
	if err := c.refreshSubgroups(ctx); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteSubgroup(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/subgroups", id), nil, nil); err != nil {
		return err
	}
	return c.refreshSubgroups(ctx)
}

//
// COMPANIES
//

type CompanyForm struct {
	Name        string
	TaxID       string // masked or digits
	Description string
}

// companyRequest rejects a malformed CNPJ before anything goes over the wire.
func companyRequest(f CompanyForm) (dto.CompanyRequest, error) {
	if strings.TrimSpace(f.Name) == "" {
		return dto.CompanyRequest{}, &FormError{Missing: []string{"Nome da Empresa"}}
	}
	digits, err := cnpj.Normalize(f.TaxID)
	if err != nil {
		return dto.CompanyRequest{}, err
	}
	return dto.CompanyRequest{Name: f.Name, TaxID: digits, Description: f.Description}, nil
}

func (c *Client) AddCompany(ctx context.Context, f CompanyForm) error {
	req, err := companyRequest(f)
	if err != nil {
		return err
	}
	if err := c.send(ctx, http.MethodPost, "/companies", req, nil); err != nil {
		return err
	}
	return c.refreshCompanies(ctx)
}

func (c *Client) UpdateCompany(ctx context.Context, id uint, f CompanyForm) error {
	req, err := companyRequest(f)
	if err != nil {
		return err
	}
	if err := c.send(ctx, http.MethodPut, idPath("/companies", id), req, nil); err != nil {
		return err
	}
	if err := c.refreshCompanies(ctx); err != nil {
		return err
	}
	return c.refreshAssets(ctx)
}

func (c *Client) DeleteCompany(ctx context.Context, id uint) error {
	if err := c.send(ctx, http.MethodDelete, idPath("/companies", id), nil, nil); err != nil {
		return err
	}
	return c.refreshCompanies(ctx)
}

//
// SESSION
//

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.send(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
