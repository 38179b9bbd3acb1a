package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"asset-registry/internal/auth"
	"asset-registry/internal/cache"
	"asset-registry/internal/cnpj"
	"asset-registry/internal/config"
	"asset-registry/internal/database"
	"asset-registry/internal/handlers"
	"asset-registry/internal/server"
	"asset-registry/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type api struct {
	srv   *httptest.Server
	calls atomic.Int64
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := database.Open(database.DriverSQLite, filepath.Join(dir, "ativos.db"), false, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite, zap.NewNop()))

	users, err := auth.NewDirectory(auth.MockCredentials(), bcrypt.MinCost)
	require.NoError(t, err)

	a := &api{}
	cfg := &config.Config{SessionSecret: "test-secret", UploadDir: filepath.Join(dir, "uploads"), CORSOrigin: "http://localhost:8080"}
	h := handlers.New(handlers.Deps{
		Store:     store.New(db),
		Cache:     cache.NewMemoryKV(),
		Users:     users,
		UploadDir: cfg.UploadDir,
	})
	router := server.NewRouter(cfg, server.Deps{Handler: h, Users: users, Log: zap.NewNop()})

	a.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.calls.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(a.srv.Close)
	return a
}

type ids struct {
	group, subgroup, otherGroup, otherSub uint
}

// seed registers Dell / Acme / TI / Computers>Laptops / Perifericos>Monitores
// through the client itself.
func seed(t *testing.T, c *Client) ids {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, c.AddBrand(ctx, "Dell"))
	require.NoError(t, c.AddCompany(ctx, CompanyForm{Name: "Acme", TaxID: "11.222.333/0001-81"}))
	require.NoError(t, c.AddSector(ctx, "TI"))
	require.NoError(t, c.AddGroup(ctx, "Computers"))
	require.NoError(t, c.AddGroup(ctx, "Perifericos"))

	var out ids
	for _, g := range c.Groups() {
		switch g.Name {
		case "Computers":
			out.group = g.ID
		case "Perifericos":
			out.otherGroup = g.ID
		}
	}
	require.NoError(t, c.AddSubgroup(ctx, SubgroupForm{Name: "Laptops", GroupID: out.group}))
	require.NoError(t, c.AddSubgroup(ctx, SubgroupForm{Name: "Monitores", GroupID: out.otherGroup}))
	out.subgroup = c.SubgroupsOf(out.group)[0].ID
	out.otherSub = c.SubgroupsOf(out.otherGroup)[0].ID
	return out
}

func laptopForm(i ids) AssetForm {
	return AssetForm{
		Code:        "A001",
		Name:        "Notebook Dell",
		Description: "i7 16GB",
		Brand:       "Dell",
		Model:       "Inspiron",
		Company:     "Acme",
		Sector:      "TI",
		GroupID:     i.group,
		SubgroupID:  i.subgroup,
		Status:      StatusActive,
		Location:    "Sala 3",
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv(BaseURLEnv, "http://ativos.internal:9000/")
	assert.Equal(t, "http://ativos.internal:9000", BaseURLFromEnv())
}

func TestLoad_MapsServerRows(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	writer := New(a.srv.URL, nil)
	i := seed(t, writer)
	_, err := writer.AddAsset(ctx, laptopForm(i))
	require.NoError(t, err)

	c := New(a.srv.URL, nil)
	require.NoError(t, c.Load(ctx))

	assets := c.Assets()
	require.Len(t, assets, 1)
	got := assets[0]
	assert.Equal(t, "A001", got.Code)
	assert.Equal(t, "Notebook Dell", got.Name)
	assert.Equal(t, "Dell", got.Brand)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "TI", got.Sector)
	assert.Equal(t, i.group, got.GroupID)
	assert.Equal(t, "Computers", got.Group)
	assert.Equal(t, i.subgroup, got.SubgroupID)
	assert.Equal(t, "Laptops", got.Subgroup)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, "Sala 3", got.Location)
	assert.False(t, got.RegistrationDate.IsZero())

	assert.Len(t, c.Brands(), 1)
	require.Len(t, c.Companies(), 1)
	assert.Equal(t, "11222333000181", c.Companies()[0].TaxID)
	assert.Len(t, c.Sectors(), 1)
	assert.Len(t, c.Groups(), 2)
	assert.Len(t, c.Subgroups(), 2)
	assert.Len(t, c.Statuses(), 2)

	byID, ok := c.AssetByID(got.ID)
	require.True(t, ok)
	assert.Equal(t, got, byID)
}

func TestLoad_FailureKeepsPreviousData(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)
	seed(t, c)
	require.NoError(t, c.Load(ctx))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"connection refused"}`))
			return
		}
		a.srv.Config.Handler.ServeHTTP(w, r)
	}))
	defer broken.Close()

	c.http.SetBaseURL(broken.URL)
	err := c.Load(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "connection refused", apiErr.Message)
	assert.Len(t, c.Brands(), 1)
	assert.Len(t, c.Statuses(), 2)
}

func TestMutations_RefetchAffectedList(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)
	i := seed(t, c)

	id, err := c.AddAsset(ctx, laptopForm(i))
	require.NoError(t, err)
	require.Len(t, c.Assets(), 1)
	assert.Equal(t, id, c.Assets()[0].ID)

	// caught locally against the loaded list, nothing is sent
	before := a.calls.Load()
	_, err = c.AddAsset(ctx, laptopForm(i))
	var ferr *FormError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, []string{"Código já cadastrado", "Nome já cadastrado"}, ferr.Duplicates)
	assert.Equal(t, before, a.calls.Load())

	// a client with a stale list still gets the server's answer
	stale := New(a.srv.URL, nil)
	_, err = stale.AddAsset(ctx, laptopForm(i))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "codigo", apiErr.Field)

	require.NoError(t, c.Load(ctx))
	assert.Len(t, c.Assets(), 1)

	form := laptopForm(i)
	form.Location = "Almoxarifado"
	require.NoError(t, c.UpdateAsset(ctx, id, form))
	assert.Equal(t, "Almoxarifado", c.Assets()[0].Location)

	require.NoError(t, c.UpdateBrand(ctx, c.Brands()[0].ID, "Dell Inc"))
	assert.Equal(t, "Dell Inc", c.Assets()[0].Brand)

	require.NoError(t, c.DeactivateAsset(ctx, id))
	assert.Equal(t, StatusInactive, c.Assets()[0].Status)

	err = c.DeleteBrand(ctx, c.Brands()[0].ID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	err = c.DeleteAsset(ctx, 999)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Len(t, c.Assets(), 1)

	require.NoError(t, c.DeleteAsset(ctx, id))
	assert.Empty(t, c.Assets())
}

func TestAssetMutations_ValidateBeforeSending(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)
	i := seed(t, c)

	incomplete := laptopForm(i)
	incomplete.Location = " "
	incomplete.Model = ""

	before := a.calls.Load()
	_, err := c.AddAsset(ctx, incomplete)
	var ferr *FormError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, []string{"Modelo", "Onde está localizado"}, ferr.Missing)
	assert.Equal(t, before, a.calls.Load(), "an invalid form must not reach the server")
	assert.Empty(t, c.Assets())

	id, err := c.AddAsset(ctx, laptopForm(i))
	require.NoError(t, err)

	other := laptopForm(i)
	other.Code, other.Name = "A002", "Notebook Dell 2"
	otherID, err := c.AddAsset(ctx, other)
	require.NoError(t, err)

	// editing keeps its own code but may not take another asset's
	asset, ok := c.AssetByID(otherID)
	require.True(t, ok)
	form := FormFromAsset(asset)
	form.Location = "Almoxarifado"
	require.NoError(t, c.UpdateAsset(ctx, otherID, form))

	form.Code = "a001"
	before = a.calls.Load()
	err = c.UpdateAsset(ctx, otherID, form)
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, []string{"Código já cadastrado"}, ferr.Duplicates)
	assert.Equal(t, before, a.calls.Load())

	first, ok := c.AssetByID(id)
	require.True(t, ok)
	assert.Equal(t, "A001", first.Code)
	updated, _ := c.AssetByID(otherID)
	assert.Equal(t, "Almoxarifado", updated.Location)
}

func TestAddCompany_CNPJ(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)

	before := a.calls.Load()
	err := c.AddCompany(ctx, CompanyForm{Name: "Beta", TaxID: "11.222.333/0001-82"})
	assert.ErrorIs(t, err, cnpj.ErrChecksum)
	assert.Equal(t, before, a.calls.Load(), "no request may be sent for a malformed CNPJ")

	require.NoError(t, c.AddCompany(ctx, CompanyForm{Name: "Beta", TaxID: "11.444.777/0001-61", Description: "Filial"}))
	require.Len(t, c.Companies(), 1)
	assert.Equal(t, "11444777000161", c.Companies()[0].TaxID)
	assert.Equal(t, "Filial", c.Companies()[0].Description)

	require.NoError(t, c.AddCompany(ctx, CompanyForm{Name: "Gama"}))
	assert.Len(t, c.Companies(), 2)
}

func TestSetGroup_ClearsForeignSubgroup(t *testing.T) {
	a := newAPI(t)
	c := New(a.srv.URL, nil)
	i := seed(t, c)

	f := laptopForm(i)
	c.SetGroup(&f, i.group)
	assert.Equal(t, i.subgroup, f.SubgroupID, "subgroup of the same group is kept")

	c.SetGroup(&f, i.otherGroup)
	assert.Equal(t, i.otherGroup, f.GroupID)
	assert.Zero(t, f.SubgroupID)

	f.SubgroupID = i.otherSub
	c.SetGroup(&f, i.otherGroup)
	assert.Equal(t, i.otherSub, f.SubgroupID)
}

func TestValidateForm(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)
	i := seed(t, c)

	var ferr *FormError
	err := c.ValidateForm(AssetForm{Code: "X1"}, 0)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, []string{"Nome", "Descrição", "Marca", "Modelo", "Empresa", "Setor", "Grupo", "Subgrupo", "Status", "Onde está localizado"}, ferr.Missing)
	assert.Contains(t, err.Error(), "Preencha todos os campos obrigatórios")

	require.NoError(t, c.ValidateForm(laptopForm(i), 0))
	id, err := c.AddAsset(ctx, laptopForm(i))
	require.NoError(t, err)

	dup := laptopForm(i)
	dup.Code = " a001 "
	err = c.ValidateForm(dup, 0)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, []string{"Código já cadastrado", "Nome já cadastrado"}, ferr.Duplicates)

	// editing the same asset does not collide with itself
	assert.NoError(t, c.ValidateForm(laptopForm(i), id))
}

func TestSession(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	c := New(a.srv.URL, nil)

	_, err := c.Login(ctx, "admin@empresa.com", "nope")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	u, err := c.Login(ctx, "admin@empresa.com", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@empresa.com", me.Email)

	require.NoError(t, c.Logout(ctx))
	_, err = c.Me(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestUploadImage(t *testing.T) {
	a := newAPI(t)
	c := New(a.srv.URL, nil)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	url, err := c.UploadImage(context.Background(), "foto.png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	_, err = c.UploadImage(context.Background(), "x.txt", strings.NewReader("hello"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "image", apiErr.Field)
}
