package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/hrportal/backend/internal/interfaces/http/dto"
	"github.com/hrportal/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAuthContext simulates an authenticated request without a real token
func setAuthContext(c *gin.Context, profileID uuid.UUID, role identity.Role) {
	c.Set(middleware.AuthActorKey, identity.Actor{ProfileID: profileID, Role: role})
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-id")
				c.Request.Header.Set("X-Request-ID", "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestGetActor(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		c, _ := newTestContext(t)
		profileID := uuid.New()
		setAuthContext(c, profileID, identity.RoleOffice)

		actor, err := getActor(c)
		require.NoError(t, err)
		assert.Equal(t, profileID, actor.ProfileID)
		assert.Equal(t, identity.RoleOffice, actor.Role)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getActor(c)
		assert.Error(t, err)
	})
}

func TestParseIDParam(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		c, _ := newTestContext(t)
		want := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: want.String()}}

		got, err := parseIDParam(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, err := parseIDParam(c)
		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, gin.H{"hello": "world"})

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
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Created(c, gin.H{"id": uuid.New().String()})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		call     func(h *BaseHandler, c *gin.Context)
		wantCode int
		wantErr  string
	}{
		{
			name:     "bad request",
			call:     func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad input") },
			wantCode: http.StatusBadRequest,
			wantErr:  dto.ErrCodeBadRequest,
		},
		{
			name:     "not found",
			call:     func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") },
			wantCode: http.StatusNotFound,
			wantErr:  dto.ErrCodeNotFound,
		},
		{
			name:     "unauthorized",
			call:     func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "no token") },
			wantCode: http.StatusUnauthorized,
			wantErr:  dto.ErrCodeUnauthorized,
		},
		{
			name:     "forbidden",
			call:     func(h *BaseHandler, c *gin.Context) { h.Forbidden(c, "nope") },
			wantCode: http.StatusForbidden,
			wantErr:  dto.ErrCodeForbidden,
		},
		{
			name:     "internal",
			call:     func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") },
			wantCode: http.StatusInternalServerError,
			wantErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(t)

			tt.call(h, c)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "not found sentinel",
			err:      shared.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "forbidden sentinel",
			err:      shared.ErrForbidden,
			wantCode: http.StatusForbidden,
			wantErr:  "FORBIDDEN",
		},
		{
			name:     "invalid transition",
			err:      shared.ErrInvalidTransition,
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "INVALID_TRANSITION",
		},
		{
			name:     "domain error with entity not found code",
			err:      shared.NewDomainError("REPORT_NOT_FOUND", "Report not found"),
			wantCode: http.StatusNotFound,
			wantErr:  "REPORT_NOT_FOUND",
		},
		{
			name:     "concurrent modification",
			err:      shared.ErrConcurrentUpdate,
			wantCode: http.StatusConflict,
			wantErr:  "CONCURRENT_MODIFICATION",
		},
		{
			name:     "unknown error hides internals",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(t)
			c.Set(middleware.RequestIDKey, "req-123")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.Equal(t, "req-123", resp.Error.RequestID)
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}
