package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/tokens"
)

const (
	ctxPrincipalID   = "principal_id"
	ctxPrincipalKind = "principal_kind"
)

type Middleware struct {
	Tokens *tokens.Service
}

func New(svc *tokens.Service) *Middleware {
	return &Middleware{Tokens: svc}
}

// RequireLogin accepts any authenticated principal. Token validity alone
// authorizes the request; the gate never goes back to the database.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token d'authentification requis")
		}

		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token invalide ou expiré")
		}

		c.Set(ctxPrincipalID, claims.Subject)
		c.Set(ctxPrincipalKind, claims.Kind)
		return next(c)
	}
}

// CompanyOnly gates routes reserved to hiring companies.
func (m *Middleware) CompanyOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireLogin(func(c echo.Context) error {
		if PrincipalKind(c) != models.KindCompany {
			return echo.NewHTTPError(http.StatusForbidden, "Accès réservé aux entreprises")
		}
		return next(c)
	})
}

func PrincipalID(c echo.Context) string {
	id, _ := c.Get(ctxPrincipalID).(string)
	return id
}

func PrincipalKind(c echo.Context) string {
	kind, _ := c.Get(ctxPrincipalKind).(string)
	return kind
}

// tokenFromRequest reads the Authorization header first and falls back to
// the legacy "token" cookie kept for older clients.
func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if ck, err := c.Cookie("token"); err == nil {
		return ck.Value
	}
	return ""
}
