package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/middleware/auth"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/tokens"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_user")

	var req struct {
		Email      string   `json:"email"`
		Password   string   `json:"password"`
		LastName   string   `json:"nom"`
		FirstName  string   `json:"prenom"`
		Phone      string   `json:"telephone"`
		Skills     []string `json:"competences"`
		Experience string   `json:"experience"`
		CVURL      string   `json:"cv_url"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	res, err := h.Svc.RegisterUser(ctx, service.RegisterUserInput{
		Email:      req.Email,
		Password:   req.Password,
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		CVURL:      req.CVURL,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Utilisateur créé avec succès",
		"user_id":   res.PrincipalID,
		"token":     res.Token,
		"user_type": res.Kind,
	})
}

func (h *AuthHandler) RegisterCompany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register_company")

	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		Name        string `json:"nom"`
		Description string `json:"description"`
		Sector      string `json:"secteur"`
		Address     string `json:"adresse"`
		Phone       string `json:"telephone"`
		Website     string `json:"site_web"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	res, err := h.Svc.RegisterCompany(ctx, service.RegisterCompanyInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Description: req.Description,
		Sector:      req.Sector,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Entreprise créée avec succès",
		"company_id": res.PrincipalID,
		"token":      res.Token,
		"user_type":  res.Kind,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	// Legacy clients read the token back from this cookie instead of
	// sending an Authorization header.
	c.SetCookie(createCookie("token", res.Token, "/", time.Now().Add(tokens.DefaultTTL)))

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Connexion réussie",
		"token":     res.Token,
		"user_id":   res.PrincipalID,
		"user_type": res.Kind,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(deleteCookie("token", "/"))
	return c.JSON(http.StatusOK, echo.Map{"message": "Déconnexion réussie"})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	principal, err := h.Svc.Principal(ctx, auth.PrincipalID(c), auth.PrincipalKind(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"valid":     true,
		"user_type": auth.PrincipalKind(c),
		"user":      principal,
	})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.change_password")

	var req struct {
		OldPassword string `json:"ancien_mot_de_passe"`
		NewPassword string `json:"nouveau_mot_de_passe"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	if err := h.Svc.ChangePassword(ctx, auth.PrincipalID(c), auth.PrincipalKind(c), req.OldPassword, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Mot de passe modifié avec succès"})
}
