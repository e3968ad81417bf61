package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ritik/festreg/internal/app/services"
	"github.com/ritik/festreg/internal/middleware"
	"github.com/ritik/festreg/internal/pkg/apperrors"
)

// ReportController handles rosters, printable lists, exports and summary
// counts
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// EventLists returns per-event rosters as JSON, keyed by event name. The
// type parameter selects individual or team rosters; event may repeat.
func (c *ReportController) EventLists(ctx *gin.Context) {
	listType := ctx.DefaultQuery("type", "individual")
	events := ctx.QueryArray("event")

	if listType == "team" || listType == services.ListTypeTeamEvent {
		rosters, err := c.reportService.TeamRosters(ctx, events)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, rosters)
		return
	}

	rosters, err := c.reportService.IndividualRosters(ctx, events)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rosters)
}

// PrintLists renders a printable list, or streams it as a CSV attachment
// when format=csv.
func (c *ReportController) PrintLists(ctx *gin.Context) {
	req := services.PrintListRequest{
		Type:    ctx.DefaultQuery("type", services.ListTypeAll),
		College: ctx.Query("college"),
	}
	if event := ctx.Query("event"); event != "" {
		req.Events = []string{event}
	}

	tables, err := c.reportService.BuildLists(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Error retrieving data"
		if errors.Is(err, apperrors.ErrValidationFailed) {
			status = http.StatusBadRequest
			message = err.Error()
		}
		ctx.HTML(status, "print-lists.html", gin.H{
			"type":  req.Type,
			"error": message,
		})
		return
	}

	if ctx.Query("format") == "csv" {
		ctx.Header("Content-Type", "text/csv")
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_list.csv", req.Type))
		if err := c.reportService.WriteCSV(ctx.Writer, tables); err != nil {
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.HTML(http.StatusOK, "print-lists.html", gin.H{
		"type":    req.Type,
		"tables":  tables,
		"event":   ctx.Query("event"),
		"college": req.College,
	})
}

// Events lists the distinct event names seen in registrations
func (c *ReportController) Events(ctx *gin.Context) {
	catalog, err := c.reportService.Events(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, catalog)
}

// Summary returns the dashboard registration counts
func (c *ReportController) Summary(ctx *gin.Context) {
	summary, err := c.reportService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Statistics returns participation counts across both categories
func (c *ReportController) Statistics(ctx *gin.Context) {
	stats, err := c.reportService.Statistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
