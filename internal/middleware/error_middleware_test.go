package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ritik/festreg/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "registration not found",
			err:        apperrors.ErrRegistrationNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Registration not found"}`,
		},
		{
			name:       "team not found",
			err:        apperrors.ErrTeamNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Team not found"}`,
		},
		{
			name:       "roll number conflict",
			err:        apperrors.ErrRollNoExists,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Roll number already registered"}`,
		},
		{
			name:       "members not found carries identifiers",
			err:        apperrors.NewMembersNotFoundError([]string{"P-0404"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"unknown member identifiers: P-0404"}`,
		},
		{
			name:       "empty membership",
			err:        apperrors.ErrEmptyMembership,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Team must have at least one member"}`,
		},
		{
			name:       "validation failure carries message",
			err:        apperrors.NewValidationError("no events selected"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"no events selected"}`,
		},
		{
			name:       "unknown error is masked",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(ctx, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
