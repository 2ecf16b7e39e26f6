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

type JobHandler struct {
	Svc *service.JobService
}

func (h *JobHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "jobs.list")

	page, offset, limit := pageParams(c)

	filter := repo.JobFilter{
		Query:        c.QueryParam("search"),
		Location:     c.QueryParam("localisation"),
		ContractType: c.QueryParam("type_contrat"),
	}

	total, items, err := h.Svc.List(ctx, filter, offset, limit)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
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

func (h *JobHandler) Get(c echo.Context) error {
	job, company, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	resp := struct {
		models.Job
		CompanyName   string `json:"company_name,omitempty"`
		CompanySector string `json:"company_secteur,omitempty"`
	}{Job: *job}
	if company != nil {
		resp.CompanyName = company.Name
		resp.CompanySector = company.Sector
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "jobs.create")

	var req struct {
		Title              string   `json:"titre"`
		Description        string   `json:"description"`
		Salary             *float64 `json:"salaire"`
		ContractType       string   `json:"type_contrat"`
		Location           string   `json:"localisation"`
		RequiredSkills     []string `json:"competences_requises"`
		RequiredExperience string   `json:"experience_requise"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	job, err := h.Svc.Create(ctx, auth.PrincipalID(c), service.CreateJobInput{
		Title:              req.Title,
		Description:        req.Description,
		Salary:             req.Salary,
		ContractType:       req.ContractType,
		Location:           req.Location,
		RequiredSkills:     req.RequiredSkills,
		RequiredExperience: req.RequiredExperience,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, job)
}

// ownJob resolves the job and enforces that the caller is its owner.
func (h *JobHandler) ownJob(c echo.Context) (*models.Job, error) {
	job, _, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, httpError(err)
	}
	if job.CompanyID != auth.PrincipalID(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Non autorisé à modifier cette offre")
	}
	return job, nil
}

func (h *JobHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "jobs.update")

	if _, err := h.ownJob(c); err != nil {
		return err
	}

	var req struct {
		Title              *string   `json:"titre"`
		Description        *string   `json:"description"`
		Salary             *float64  `json:"salaire"`
		ContractType       *string   `json:"type_contrat"`
		Location           *string   `json:"localisation"`
		RequiredSkills     *[]string `json:"competences_requises"`
		RequiredExperience *string   `json:"experience_requise"`
		Active             *bool     `json:"actif"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	job, err := h.Svc.Update(ctx, c.Param("id"), service.UpdateJobInput{
		Title:              req.Title,
		Description:        req.Description,
		Salary:             req.Salary,
		ContractType:       req.ContractType,
		Location:           req.Location,
		RequiredSkills:     req.RequiredSkills,
		RequiredExperience: req.RequiredExperience,
		Active:             req.Active,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c echo.Context) error {
	if _, err := h.ownJob(c); err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Offre d'emploi supprimée avec succès"})
}

func (h *JobHandler) Deactivate(c echo.Context) error {
	if _, err := h.ownJob(c); err != nil {
		return err
	}

	if err := h.Svc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Offre d'emploi désactivée avec succès"})
}

func (h *JobHandler) Applications(c echo.Context) error {
	if _, err := h.ownJob(c); err != nil {
		return err
	}

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.Applications(c.Request().Context(), c.Param("id"), offset, limit)
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
