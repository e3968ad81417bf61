package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ritik/festreg/internal/app/models/dto"
	"github.com/ritik/festreg/internal/app/services"
	"github.com/ritik/festreg/internal/middleware"
	"github.com/ritik/festreg/internal/pkg/apperrors"
)

// TeamController handles team registration operations
type TeamController struct {
	teamService services.TeamService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService services.TeamService) *TeamController {
	return &TeamController{
		teamService: teamService,
	}
}

// Register handles the team registration form. Unknown member identifiers
// send the browser back with their own status flag so the form can point at
// the member list.
func (c *TeamController) Register(ctx *gin.Context) {
	var form dto.TeamRegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.Redirect(http.StatusFound, "/team-register.html?status=error")
		return
	}

	detail, err := c.teamService.Register(ctx, &form)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembersNotFound) {
			ctx.Redirect(http.StatusFound, "/team-register.html?status=pid_not_found")
			return
		}
		ctx.Redirect(http.StatusFound, "/team-register.html?status=error")
		return
	}

	ctx.HTML(http.StatusOK, "team-confirmation.html", gin.H{
		"team_id":   detail.TID,
		"team_name": detail.Name,
		"members":   detail.Members,
		"events":    detail.Events,
	})
}

// Results renders the team search page.
func (c *TeamController) Results(ctx *gin.Context) {
	teams, err := c.teamService.Search(ctx, ctx.Query("query"))
	if err != nil {
		ctx.HTML(http.StatusOK, "team-results.html", gin.H{
			"error": "Error retrieving teams",
			"teams": nil,
		})
		return
	}
	ctx.HTML(http.StatusOK, "team-results.html", gin.H{"teams": teams})
}

// GetTeam retrieves one team with members, events and derived college
func (c *TeamController) GetTeam(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	detail, err := c.teamService.GetDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// UpdateTeam replaces a team's name, membership and event selections
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Team name is required"})
		return
	}

	if _, err := c.teamService.Update(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteTeam removes a team, leaving its member registrations in place
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.teamService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
