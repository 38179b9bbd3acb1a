package store

import (
	"context"
	"errors"
	"testing"

	"asset-registry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAsset_ResolvesLookups(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	created, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	assets, err := s.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	a := assets[0]
	assert.Equal(t, "A001", a.Code)
	require.NotNil(t, a.Brand)
	assert.Equal(t, "Dell", a.Brand.Name)
	require.NotNil(t, a.Company)
	assert.Equal(t, "Acme", a.Company.Name)
	require.NotNil(t, a.Sector)
	assert.Equal(t, "TI", a.Sector.Name)
	require.NotNil(t, a.GroupID)
	assert.Equal(t, f.groupID, *a.GroupID)
	require.NotNil(t, a.SubgroupID)
	assert.Equal(t, f.subgroupID, *a.SubgroupID)
	assert.Equal(t, models.StatusActive, a.Status.Name)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestCreateAsset_NameLookupIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)

	in := laptopInput(f)
	in.BrandName = "dell"
	in.SectorName = " ti "

	created, err := s.CreateAsset(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, f.brandID, *created.BrandID)
	assert.Equal(t, f.sectorID, *created.SectorID)
}

func TestCreateAsset_RejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	_, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)

	sameCode := laptopInput(f)
	sameCode.Name = "Outro nome"
	_, err = s.CreateAsset(ctx, sameCode)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "codigo", dup.Field())

	sameName := laptopInput(f)
	sameName.Code = "A002"
	sameName.Name = "NOTEBOOK DELL"
	_, err = s.CreateAsset(ctx, sameName)
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "nome", dup.Field())

	assert.EqualValues(t, 1, countAssets(t, s))
}

func TestCreateAsset_Validation(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	cases := []struct {
		name  string
		edit  func(*AssetInput)
		field string
	}{
		{"missing code", func(in *AssetInput) { in.Code = "  " }, "codigo"},
		{"missing name", func(in *AssetInput) { in.Name = "" }, "nome"},
		{"unknown brand", func(in *AssetInput) { in.BrandName = "Compaq" }, "marca"},
		{"unknown company", func(in *AssetInput) { in.CompanyName = "Initech" }, "empresa"},
		{"unknown sector", func(in *AssetInput) { in.SectorName = "RH" }, "setor"},
		{"unknown group", func(in *AssetInput) { in.GroupID = 999 }, "idGrupo"},
		{"subgroup without group", func(in *AssetInput) { in.GroupID = 0 }, "idGrupo"},
		{"subgroup of other group", func(in *AssetInput) { in.SubgroupID = f.otherSubID }, "idSubgrupo"},
		{"unknown subgroup", func(in *AssetInput) { in.SubgroupID = 999 }, "idSubgrupo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := laptopInput(f)
			tc.edit(&in)
			_, err := s.CreateAsset(ctx, in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	assert.Zero(t, countAssets(t, s))
}

func TestCreateAsset_InactiveAndOptionalRefs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAsset(ctx, AssetInput{Code: "B1", Name: "Cadeira", Active: false})
	require.NoError(t, err)

	got, err := s.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWrittenOff, got.Status.Name)
	assert.Nil(t, got.Brand)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.SubgroupID)
}

func TestUpdateAsset(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	created, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)

	in := laptopInput(f)
	in.Model = "Latitude"
	in.GroupID = f.otherGroupID
	in.SubgroupID = f.otherSubID
	in.Active = false
	_, err = s.UpdateAsset(ctx, created.ID, in)
	require.NoError(t, err)

	got, err := s.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Latitude", got.Model)
	assert.Equal(t, f.otherGroupID, *got.GroupID)
	assert.Equal(t, "Monitores", got.Subgroup.Name)
	assert.Equal(t, models.StatusWrittenOff, got.Status.Name)

	_, err = s.UpdateAsset(ctx, 999, laptopInput(f))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAsset_DuplicateAgainstOtherRow(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	_, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)
	second, err := s.CreateAsset(ctx, AssetInput{Code: "A002", Name: "Monitor", Active: true})
	require.NoError(t, err)

	in := laptopInput(f)
	in.Name = "Monitor novo"
	_, err = s.UpdateAsset(ctx, second.ID, in)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "codigo", dup.Field())
}

func TestDeleteAsset(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	created, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteAsset(ctx, 999), ErrNotFound)
	assert.EqualValues(t, 1, countAssets(t, s))

	require.NoError(t, s.DeleteAsset(ctx, created.ID))
	assert.Zero(t, countAssets(t, s))

	_, err = s.GetAsset(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateAsset(t *testing.T) {
	s := newTestStore(t)
	f := seedLookups(t, s)
	ctx := context.Background()

	created, err := s.CreateAsset(ctx, laptopInput(f))
	require.NoError(t, err)

	require.NoError(t, s.DeactivateAsset(ctx, created.ID))
	got, err := s.GetAsset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWrittenOff, got.Status.Name)

	assert.ErrorIs(t, s.DeactivateAsset(ctx, 999), ErrNotFound)
}
