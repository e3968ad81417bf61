package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ritik/festreg/internal/app/models/dto"
	"github.com/ritik/festreg/internal/app/services"
	"github.com/ritik/festreg/internal/middleware"
	"github.com/ritik/festreg/internal/pkg/apperrors"
)

// RegistrationController handles individual registration operations
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register handles the individual registration form. Failures send the
// browser back to the form with a status flag; success renders the
// confirmation page with the assigned identifier.
func (c *RegistrationController) Register(ctx *gin.Context) {
	var form dto.RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.Redirect(http.StatusFound, "/register.html?status=error")
		return
	}

	detail, err := c.registrationService.Register(ctx, &form)
	if err != nil {
		if errors.Is(err, apperrors.ErrRollNoExists) {
			ctx.Redirect(http.StatusFound, "/register.html?status=exists")
			return
		}
		ctx.Redirect(http.StatusFound, "/register.html?status=error")
		return
	}

	ctx.HTML(http.StatusOK, "confirmation.html", gin.H{
		"pid":     detail.PID,
		"name":    detail.Name,
		"phoneno": detail.PhoneNo,
		"rollno":  detail.RollNo,
		"college": detail.College,
		"course":  detail.Course,
		"year":    detail.Year,
		"events":  detail.Events,
	})
}

// Results renders the registration search page.
func (c *RegistrationController) Results(ctx *gin.Context) {
	results, err := c.registrationService.Search(ctx, ctx.Query("query"))
	if err != nil {
		ctx.HTML(http.StatusOK, "results.html", gin.H{
			"error":   "Error retrieving registrations",
			"results": nil,
		})
		return
	}
	ctx.HTML(http.StatusOK, "results.html", gin.H{"results": results})
}

// GetRegistration retrieves one registration with its event selections
func (c *RegistrationController) GetRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	detail, err := c.registrationService.GetDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// UpdateRegistration replaces a registration's fields and event selections
func (c *RegistrationController) UpdateRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid registration data"})
		return
	}

	if _, err := c.registrationService.Update(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteRegistration removes a registration
func (c *RegistrationController) DeleteRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.registrationService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GetStudent retrieves a registrant by identifier, events merged across
// individual and team selections
func (c *RegistrationController) GetStudent(ctx *gin.Context) {
	detail, err := c.registrationService.GetDetailByPID(ctx, ctx.Param("pid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SearchPIDs serves the registration typeahead
func (c *RegistrationController) SearchPIDs(ctx *gin.Context) {
	refs, err := c.registrationService.Suggest(ctx, ctx.Query("term"), 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	suggestions := make([]dto.Suggestion, 0, len(refs))
	for _, ref := range refs {
		suggestions = append(suggestions, dto.Suggestion{
			Value: ref.PID,
			Label: ref.PID + ": " + ref.Name,
		})
	}
	ctx.JSON(http.StatusOK, suggestions)
}

// SearchPIDsForTeam serves the typeahead for adding members to an existing
// team, omitting registrants already on it. Without a team ID it returns
// nothing rather than failing, mirroring the plain typeahead's behavior on
// short terms.
func (c *RegistrationController) SearchPIDsForTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseInt(ctx.Query("teamId"), 10, 64)
	if err != nil || teamID <= 0 {
		ctx.JSON(http.StatusOK, []dto.Suggestion{})
		return
	}

	refs, err := c.registrationService.Suggest(ctx, ctx.Query("term"), teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	suggestions := make([]dto.Suggestion, 0, len(refs))
	for _, ref := range refs {
		suggestions = append(suggestions, dto.Suggestion{
			Value: ref.PID,
			Label: ref.PID + ": " + ref.Name,
			Name:  ref.Name,
		})
	}
	ctx.JSON(http.StatusOK, suggestions)
}

// FindMember reports whether a registrant identifier exists
func (c *RegistrationController) FindMember(ctx *gin.Context) {
	pid := ctx.Query("pid")
	if pid == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "PID missing"})
		return
	}

	ref, err := c.registrationService.FindMember(ctx, pid)
	if err != nil {
		if errors.Is(err, apperrors.ErrRegistrationNotFound) {
			ctx.JSON(http.StatusOK, dto.FindMemberResponse{Found: false})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FindMemberResponse{Found: true, PID: ref.PID, Name: ref.Name})
}

// parseID reads the :id path parameter, answering 400 when it is not a
// number.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}
