package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(c *gin.Context, tenantID, userID uuid.UUID) {
	c.Set("jwt_tenant_id", tenantID.String())
	c.Set("jwt_user_id", userID.String())
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetTenantID(t *testing.T) {
	t.Run("from jwt claims", func(t *testing.T) {
		c, _ := newTestContext(t)
		tenantID := uuid.New()
		setJWTContext(c, tenantID, uuid.New())

		got, err := getTenantID(c)

		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
	})

	t.Run("missing claims", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getTenantID(c)

		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, gin.H{"value": 42})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate assignment maps to 409",
			err:        shared.NewDomainError("DUPLICATE_ASSIGNMENT", "student already assigned"),
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_ASSIGNMENT",
		},
		{
			name:       "already cancelled maps to 409",
			err:        shared.NewDomainError("ALREADY_CANCELLED", "assignment already cancelled"),
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_CANCELLED",
		},
		{
			name:       "not found maps to 404",
			err:        shared.NewDomainError("STUDENT_NOT_FOUND", "student not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "STUDENT_NOT_FOUND",
		},
		{
			name:       "business rule maps to 422",
			err:        shared.NewDomainError("EXCEEDS_REMAINING", "payment exceeds remaining amount"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EXCEEDS_REMAINING",
		},
		{
			name:       "wrapped domain error unwraps",
			err:        fmt.Errorf("record payment: %w", shared.NewDomainError("NOT_FOUND", "installment not found")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "plain error maps to 500",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleErrorRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)
	c.Set("request_id", "req-abc")

	h.HandleError(c, shared.NewDomainError("NOT_FOUND", "gone"))

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-abc", resp.Error.RequestID)
}
