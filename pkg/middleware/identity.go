package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sparc/entities"
)

const (
	CookieName = "SPARC_UID"
	HeaderUID  = "X-User-Id"

	ctxUID  = "uid"
	ctxUser = "user"
)

// Users records every identity that reaches the API.
type Users interface {
	Touch(ctx context.Context, uid string, promote bool, at time.Time) (*entities.User, error)
}

type IdentityConfig struct {
	// DevLogin lets ?uid= or DevUID stand in for the identity proxy.
	DevLogin  bool
	DevUID    string
	AdminUIDs []string
	Now       func() time.Time
	Logger    *zap.Logger
}

// Identity resolves the caller from the proxy header or the session cookie.
// Requests without an identity get 401.
func Identity(cfg IdentityConfig, users Users) echo.MiddlewareFunc {
	admins := make(map[string]struct{}, len(cfg.AdminUIDs))
	for _, a := range cfg.AdminUIDs {
		admins[a] = struct{}{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get(HeaderUID)
			if uid == "" {
				if ck, err := c.Cookie(CookieName); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" && cfg.DevLogin {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = cfg.DevUID
				}
				if uid != "" {
					SetSession(c, uid)
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing user identity"})
			}

			_, promote := admins[uid]
			u, err := users.Touch(c.Request().Context(), uid, promote, now())
			if err != nil {
				log.Error("touch user", zap.String("uid", uid), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load user"})
			}
			c.Set(ctxUID, uid)
			c.Set(ctxUser, u)
			return next(c)
		}
	}
}

func SetSession(c echo.Context, uid string) {
	c.SetCookie(&http.Cookie{Name: CookieName, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// UID returns the caller resolved by Identity.
func UID(c echo.Context) string {
	uid, _ := c.Get(ctxUID).(string)
	return uid
}

func CurrentUser(c echo.Context) *entities.User {
	u, _ := c.Get(ctxUser).(*entities.User)
	return u
}

// RequireRole rejects callers whose role differs with 403.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing user identity"})
			}
			if u.Role != role {
				return c.JSON(http.StatusForbidden, echo.Map{"error": role + " role required"})
			}
			return next(c)
		}
	}
}
