package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"asset-registry/internal/cache"
	"asset-registry/internal/models"
	"asset-registry/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUserKey is where middleware.InjectUser leaves the session user.
const CurrentUserKey = "CurrentUser"

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// actor is the e-mail recorded in the audit journal, empty for anonymous calls.
func actor(c *gin.Context) string {
	if u, ok := currentUser(c); ok {
		return u.Email
	}
	return ""
}

func badRequest(c *gin.Context, field, msg string) {
	body := gin.H{"error": msg}
	if field != "" {
		body["field"] = field
	}
	c.JSON(http.StatusBadRequest, body)
}

// fail maps store errors to status codes. Anything unrecognized is a 500
// carrying the driver message.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *store.ValidationError
	var dup *store.DuplicateError

	switch {
	case errors.As(err, &verr):
		badRequest(c, verr.Field, verr.Message)
	case errors.As(err, &dup):
		badRequest(c, dup.Field(), dup.Message())
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
	case errors.Is(err, store.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Registro em uso por outros cadastros"})
	default:
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "id", "ID inválido")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "", "JSON inválido: "+err.Error())
		return false
	}
	return true
}

// audit records a mutation. A failed journal write is logged and does not
// fail the request that caused it.
func (h *Handler) audit(c *gin.Context, entity string, id uint, action, details string) {
	if err := h.store.Audit(c.Request.Context(), actor(c), entity, id, action, details); err != nil {
		h.log.Warn("audit log write failed",
			zap.String("entity", entity),
			zap.Uint("entity_id", id),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Each list key is stored under a generation suffix ("assets@3"). A mutation
// bumps the generation, so a response loaded before the write and stored after
// it lands under a key no reader asks for again.
func generationKey(key string) string { return "gen:" + key }

func (h *Handler) versionedKey(ctx context.Context, key string) (string, error) {
	gen, err := h.cache.Get(ctx, generationKey(key))
	if errors.Is(err, cache.ErrMiss) {
		gen, err = "0", nil
	}
	if err != nil {
		return "", err
	}
	return key + "@" + gen, nil
}

func (h *Handler) invalidate(ctx context.Context, keys ...string) {
	stale := make([]string, 0, len(keys))
	for _, key := range keys {
		gen, err := h.cache.Incr(ctx, generationKey(key))
		if err != nil {
			h.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
			continue
		}
		stale = append(stale, fmt.Sprintf("%s@%d", key, gen-1))
	}
	if err := h.cache.Delete(ctx, stale...); err != nil {
		h.log.Warn("cache cleanup failed", zap.Strings("keys", stale), zap.Error(err))
	}
}

// cachedJSON serves key from the cache, or calls load and stores its result
// under the generation read before loading.
func (h *Handler) cachedJSON(c *gin.Context, key string, load func(ctx context.Context) (interface{}, error)) {
	ctx := c.Request.Context()

	vkey, err := h.versionedKey(ctx, key)
	if err != nil {
		h.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else {
		raw, err := h.cache.Get(ctx, vkey)
		if err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			h.log.Warn("cache read failed", zap.String("key", vkey), zap.Error(err))
		}
	}

	v, err := load(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		h.fail(c, err)
		return
	}
	if vkey != "" {
		if err := h.cache.Set(ctx, vkey, string(body), h.ttl); err != nil {
			h.log.Warn("cache write failed", zap.String("key", vkey), zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
