package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/middleware/auth"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/util"
)

type CompanyHandler struct {
	Svc *service.CompanyService
}

func (h *CompanyHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "companies.list")

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"companies": items,
		"total":     total,
		"page":      page,
		"limit":     limit,
		"pages":     util.TotalPages(total, limit),
	})
}

func (h *CompanyHandler) Get(c echo.Context) error {
	company, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "companies.update")

	id := c.Param("id")
	if auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à modifier cette entreprise")
	}

	var req struct {
		Name        *string `json:"nom"`
		Description *string `json:"description"`
		Sector      *string `json:"secteur"`
		Address     *string `json:"adresse"`
		Phone       *string `json:"telephone"`
		Website     *string `json:"site_web"`
		Password    *string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	company, err := h.Svc.Update(ctx, id, service.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Sector:      req.Sector,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
		Password:    req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à supprimer cette entreprise")
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Entreprise supprimée avec succès"})
}

func (h *CompanyHandler) Profile(c echo.Context) error {
	id := c.Param("id")
	if auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à voir ce profil")
	}

	company, jobs, err := h.Svc.Profile(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"company":    company,
		"jobs_count": jobs,
	})
}

func (h *CompanyHandler) Jobs(c echo.Context) error {
	ctx := c.Request().Context()

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.Jobs(ctx, c.Param("id"), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"jobs":  items,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": util.TotalPages(total, limit),
	})
}
