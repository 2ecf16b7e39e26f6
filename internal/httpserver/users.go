package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/middleware/auth"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/util"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	page, offset, limit := pageParams(c)

	total, items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": items,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": util.TotalPages(total, limit),
	})
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update")

	id := c.Param("id")
	if auth.PrincipalKind(c) != models.KindUser || auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à modifier cet utilisateur")
	}

	var req struct {
		LastName   *string   `json:"nom"`
		FirstName  *string   `json:"prenom"`
		Phone      *string   `json:"telephone"`
		Skills     *[]string `json:"competences"`
		Experience *string   `json:"experience"`
		CVURL      *string   `json:"cv_url"`
		Password   *string   `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête invalide")
	}

	user, err := h.Svc.Update(ctx, id, service.UpdateUserInput{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		CVURL:      req.CVURL,
		Password:   req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if auth.PrincipalKind(c) != models.KindUser || auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à supprimer cet utilisateur")
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Utilisateur supprimé avec succès"})
}

func (h *UserHandler) Profile(c echo.Context) error {
	id := c.Param("id")
	if auth.PrincipalKind(c) != models.KindUser || auth.PrincipalID(c) != id {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorisé à voir ce profil")
	}

	user, applications, err := h.Svc.Profile(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":               user,
		"candidatures_count": applications,
	})
}
