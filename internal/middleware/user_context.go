package middleware

import (
	"asset-registry/internal/auth"
	"asset-registry/internal/handlers"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser resolves the session user id against the directory and puts
// the user into the gin context.
func InjectUser(users *auth.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if id, ok := sess.Get(handlers.SessionUserKey).(string); ok && id != "" {
			if user, ok := users.Lookup(id); ok {
				c.Set(handlers.CurrentUserKey, user)
			}
		}

		c.Next()
	}
}
