package store

import (
	"context"
	"path/filepath"
	"testing"

	"asset-registry/internal/database"
	"asset-registry/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ativos_test.db")

	db, err := database.Open(database.DriverSQLite, path, false, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(ctx, db, database.DriverSQLite, zap.NewNop()))
	return New(db)
}

type fixture struct {
	brandID, companyID, sectorID uint
	groupID, subgroupID          uint
	otherGroupID, otherSubID     uint
}

// seedLookups creates Dell / Acme / TI / Computers>Laptops / Perifericos>Monitores.
func seedLookups(t *testing.T, s *Store) fixture {
	t.Helper()
	ctx := context.Background()

	brand, err := s.CreateBrand(ctx, "Dell")
	require.NoError(t, err)
	company, err := s.CreateCompany(ctx, CompanyInput{Name: "Acme", TaxID: "11222333000181"})
	require.NoError(t, err)
	sector, err := s.CreateSector(ctx, "TI")
	require.NoError(t, err)
	group, err := s.CreateGroup(ctx, "Computers")
	require.NoError(t, err)
	sub, err := s.CreateSubgroup(ctx, SubgroupInput{Name: "Laptops", GroupID: group.ID})
	require.NoError(t, err)
	other, err := s.CreateGroup(ctx, "Perifericos")
	require.NoError(t, err)
	otherSub, err := s.CreateSubgroup(ctx, SubgroupInput{Name: "Monitores", GroupID: other.ID})
	require.NoError(t, err)

	return fixture{
		brandID:      brand.ID,
		companyID:    company.ID,
		sectorID:     sector.ID,
		groupID:      group.ID,
		subgroupID:   sub.ID,
		otherGroupID: other.ID,
		otherSubID:   otherSub.ID,
	}
}

func countAssets(t *testing.T, s *Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&models.Asset{}).Count(&n).Error)
	return n
}

func laptopInput(f fixture) AssetInput {
	return AssetInput{
		Code:        "A001",
		Name:        "Notebook Dell",
		Description: "Notebook i7 16GB",
		Model:       "Inspiron",
		Location:    "Sala 3",
		BrandName:   "Dell",
		CompanyName: "Acme",
		SectorName:  "TI",
		GroupID:     f.groupID,
		SubgroupID:  f.subgroupID,
		Active:      true,
	}
}
