package handlers

import (
	"errors"
	"net/http"
	"strings"

	"asset-registry/internal/auth"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionUserKey holds the logged-in user id in the cookie session.
const SessionUserKey = "user_id"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("user logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autenticado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}
