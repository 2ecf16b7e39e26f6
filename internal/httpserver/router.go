package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhoudali/interim_app/internal/middleware/auth"
)

type Deps struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Companies    *CompanyHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	MW           *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Bienvenue sur l'API Interim App",
			"status":  "Fonctionnel",
		})
	})

	api := e.Group("/api")

	ath := api.Group("/auth")
	ath.POST("/register/user", d.Auth.RegisterUser)
	ath.POST("/register/company", d.Auth.RegisterCompany)
	ath.POST("/login", d.Auth.Login)
	ath.POST("/logout", d.Auth.Logout, d.MW.RequireLogin)
	ath.GET("/verify", d.Auth.Verify, d.MW.RequireLogin)
	ath.PUT("/change-password", d.Auth.ChangePassword, d.MW.RequireLogin)

	users := api.Group("/users")
	users.GET("", d.Users.List)
	users.POST("", d.Auth.RegisterUser)
	users.GET("/:id", d.Users.Get)
	users.PUT("/:id", d.Users.Update, d.MW.RequireLogin)
	users.DELETE("/:id", d.Users.Delete, d.MW.RequireLogin)
	users.GET("/:id/profile", d.Users.Profile, d.MW.RequireLogin)

	companies := api.Group("/companies")
	companies.GET("", d.Companies.List)
	companies.POST("", d.Auth.RegisterCompany)
	companies.GET("/:id", d.Companies.Get)
	companies.PUT("/:id", d.Companies.Update, d.MW.CompanyOnly)
	companies.DELETE("/:id", d.Companies.Delete, d.MW.CompanyOnly)
	companies.GET("/:id/profile", d.Companies.Profile, d.MW.CompanyOnly)
	companies.GET("/:id/jobs", d.Companies.Jobs)

	jobs := api.Group("/jobs")
	jobs.GET("", d.Jobs.List)
	jobs.GET("/:id", d.Jobs.Get)
	jobs.POST("", d.Jobs.Create, d.MW.CompanyOnly)
	jobs.PUT("/:id", d.Jobs.Update, d.MW.CompanyOnly)
	jobs.DELETE("/:id", d.Jobs.Delete, d.MW.CompanyOnly)
	jobs.PUT("/:id/deactivate", d.Jobs.Deactivate, d.MW.CompanyOnly)
	jobs.GET("/:id/applications", d.Jobs.Applications, d.MW.CompanyOnly)

	apps := api.Group("/applications")
	apps.GET("", d.Applications.List, d.MW.RequireLogin)
	apps.GET("/statistics", d.Applications.Statistics, d.MW.RequireLogin)
	apps.GET("/:id", d.Applications.Get, d.MW.RequireLogin)
	apps.POST("", d.Applications.Create, d.MW.RequireLogin)
	apps.PUT("/:id", d.Applications.Update, d.MW.RequireLogin)
	apps.DELETE("/:id", d.Applications.Delete, d.MW.RequireLogin)
	apps.PUT("/:id/status", d.Applications.UpdateStatus, d.MW.CompanyOnly)
	apps.GET("/user/:user_id", d.Applications.ByUser, d.MW.RequireLogin)
	apps.GET("/company/:company_id", d.Applications.ByCompany, d.MW.CompanyOnly)
}
