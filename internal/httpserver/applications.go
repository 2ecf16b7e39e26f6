package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/middleware/auth"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/util"
)

type ApplicationHandler struct {
	Svc *service.ApplicationService
}

// principalFilter scopes a listing to what the caller may see: a user
// their own applications, a company the ones aimed at it.
func principalFilter(c echo.Context) repo.ApplicationFilter {
	f := repo.ApplicationFilter{Status: c.QueryParam("statut")}
	switch auth.PrincipalKind(c) {
	case models.KindUser:
		f.UserID = auth.PrincipalID(c)
	case models.KindCompany:
		f.CompanyID = auth.PrincipalID(c)
	}
	return f
}

func (h *ApplicationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.List(ctx, principalFilter(c), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applications": items,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        util.TotalPages(total, limit),
	})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	if !participant(c, app) {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à consulter cette candidature")
	}

	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "applications.create")

	if auth.PrincipalKind(c) != models.KindUser {
		return echo.NewHTTPError(http.StatusForbidden, "Seuls les utilisateurs peuvent postuler")
	}

	var req struct {
		JobID       string `json:"job_id"`
		CoverLetter string `json:"lettre_motivation"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	app, err := h.Svc.Create(ctx, auth.PrincipalID(c), req.JobID, req.CoverLetter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "Candidature envoyée avec succès",
		"application_id": app.ID,
	})
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "applications.update")

	app, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if auth.PrincipalKind(c) != models.KindUser || app.UserID != auth.PrincipalID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à modifier cette candidature")
	}

	var req struct {
		CoverLetter string `json:"lettre_motivation"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	updated, err := h.Svc.UpdateCoverLetter(ctx, app.ID, req.CoverLetter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	app, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if !participant(c, app) {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à supprimer cette candidature")
	}

	if err := h.Svc.Delete(ctx, app.ID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Candidature supprimée avec succès"})
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "applications.update_status")

	app, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if app.CompanyID != auth.PrincipalID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à modifier cette candidature")
	}

	var req struct {
		Status string `json:"statut"`
		Notes  string `json:"notes_entreprise"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	updated, err := h.Svc.UpdateStatus(ctx, app.ID, req.Status, req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Statut mis à jour avec succès",
		"application": updated,
	})
}

func (h *ApplicationHandler) Statistics(c echo.Context) error {
	stats, err := h.Svc.Statistics(c.Request().Context(), auth.PrincipalID(c), auth.PrincipalKind(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_applications": stats.Total,
		"by_status": echo.Map{
			"en_attente": stats.Pending,
			"acceptees":  stats.Accepted,
			"refusees":   stats.Rejected,
		},
		"user_type": auth.PrincipalKind(c),
	})
}

func (h *ApplicationHandler) ByUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	f := repo.ApplicationFilter{UserID: userID, Status: c.QueryParam("statut")}
	switch auth.PrincipalKind(c) {
	case models.KindUser:
		if auth.PrincipalID(c) != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à consulter ces candidatures")
		}
	case models.KindCompany:
		// A company only sees this user's applications to its own jobs.
		f.CompanyID = auth.PrincipalID(c)
	}

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applications": items,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        util.TotalPages(total, limit),
	})
}

func (h *ApplicationHandler) ByCompany(c echo.Context) error {
	ctx := c.Request().Context()
	companyID := c.Param("company_id")

	if auth.PrincipalID(c) != companyID {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à consulter ces candidatures")
	}

	page, offset, limit := pageParams(c)

	f := repo.ApplicationFilter{CompanyID: companyID, Status: c.QueryParam("statut")}
	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applications": items,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        util.TotalPages(total, limit),
	})
}

func participant(c echo.Context, app *models.Application) bool {
	switch auth.PrincipalKind(c) {
	case models.KindUser:
		return app.UserID == auth.PrincipalID(c)
	case models.KindCompany:
		return app.CompanyID == auth.PrincipalID(c)
	}
	return false
}
