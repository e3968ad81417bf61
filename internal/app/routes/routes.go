package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ritik/festreg/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	registrationController *controllers.RegistrationController,
	teamController *controllers.TeamController,
	reportController *controllers.ReportController,
	publicDir string,
) {
	// --- Pages ---
	router.GET("/", func(ctx *gin.Context) {
		ctx.File(filepath.Join(publicDir, "home.html"))
	})
	router.GET("/db-login", func(ctx *gin.Context) {
		ctx.File(filepath.Join(publicDir, "db-login.html"))
	})

	router.POST("/register", registrationController.Register)
	router.POST("/register-team", teamController.Register)
	router.GET("/results", registrationController.Results)
	router.GET("/team-results", teamController.Results)
	router.GET("/print-lists", reportController.PrintLists)

	// --- JSON API ---
	api := router.Group("/api")
	{
		api.GET("/search-pids", registrationController.SearchPIDs)
		api.GET("/search-pids-for-team", registrationController.SearchPIDsForTeam)
		api.GET("/find-member", registrationController.FindMember)
		api.GET("/student/:pid", registrationController.GetStudent)

		api.GET("/registration/:id", registrationController.GetRegistration)
		api.PUT("/registration/:id", registrationController.UpdateRegistration)
		api.DELETE("/registration/:id", registrationController.DeleteRegistration)

		api.GET("/team/:id", teamController.GetTeam)
		api.PUT("/team/:id", teamController.UpdateTeam)
		api.DELETE("/team/:id", teamController.DeleteTeam)

		api.GET("/event-lists", reportController.EventLists)
		api.GET("/events", reportController.Events)
		api.GET("/registration-summary", reportController.Summary)
		api.GET("/event-statistics", reportController.Statistics)
	}

	// Everything else falls through to the public directory, so the form
	// pages and their assets are served at the root like the rest of the
	// site.
	router.NoRoute(func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.File(filepath.Join(publicDir, filepath.Clean("/"+ctx.Request.URL.Path)))
	})
}
