package handlers

import (
	"time"

	"asset-registry/internal/auth"
	"asset-registry/internal/cache"
	"asset-registry/internal/store"

	"go.uber.org/zap"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	store *store.Store
	cache cache.KV
	ttl   time.Duration
	users *auth.Directory
	log   *zap.Logger

	uploadDir     string
	publicBaseURL string
}

type Deps struct {
	Store         *store.Store
	Cache         cache.KV
	CacheTTL      time.Duration
	Users         *auth.Directory
	Log           *zap.Logger
	UploadDir     string
	PublicBaseURL string
}

func New(d Deps) *Handler {
	kv := d.Cache
	if kv == nil {
		kv = cache.Noop{}
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:         d.Store,
		cache:         kv,
		ttl:           d.CacheTTL,
		users:         d.Users,
		log:           log,
		uploadDir:     d.UploadDir,
		publicBaseURL: d.PublicBaseURL,
	}
}

// Cache keys of the list endpoints.
const (
	keyAssets      = "assets"
	keyBrands      = "brands"
	keyBrandList   = "brands:list"
	keyCompanies   = "companies"
	keyCompanyList = "companies:list"
	keySectors     = "sectors"
	keySectorList  = "sectors:list"
	keyGroups      = "groups"
	keySubgroups   = "subgroups"
	keyStatuses    = "status"
)
