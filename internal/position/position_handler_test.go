package position_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/position"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePositionService struct {
	CreateFn  func(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetAllFn  func(ctx context.Context) ([]position.PositionResponse, error)
	GetByIDFn func(ctx context.Context, id string) (position.PositionResponse, error)
	UpdateFn  func(ctx context.Context, id string, req position.UpdatePositionRequest) (position.PositionResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakePositionService) Create(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakePositionService) GetAll(ctx context.Context) ([]position.PositionResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakePositionService) GetByID(ctx context.Context, id string) (position.PositionResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakePositionService) Update(ctx context.Context, id string, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakePositionService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func TestPositionHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakePositionService{
			CreateFn: func(_ context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
				return position.PositionResponse{ID: uuid.New().String(), Name: req.Name, Level: req.Level}, nil
			},
		}

		h := position.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/positions", strings.NewReader(`{"name":"Manager","level":2}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got position.PositionResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Manager", got.Name)
		assert.Equal(t, 2, got.Level)
	})

	t.Run("level out of range", func(t *testing.T) {
		h := position.NewHandler(&fakePositionService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/positions", strings.NewReader(`{"name":"Manager","level":0}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakePositionService{
			CreateFn: func(context.Context, position.CreatePositionRequest) (position.PositionResponse, error) {
				return position.PositionResponse{}, errors.New("failed")
			},
		}

		h := position.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/positions", strings.NewReader(`{"name":"HR","level":3}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		}
	})
}

func TestPositionHandler_GetAll(t *testing.T) {
	svc := &fakePositionService{
		GetAllFn: func(context.Context) ([]position.PositionResponse, error) {
			return []position.PositionResponse{{ID: uuid.New().String(), Name: "Director", Level: 1}}, nil
		},
	}

	h := position.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/positions", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var got []position.PositionResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
}

func TestPositionHandler_Update(t *testing.T) {
	posID := uuid.New().String()
	svc := &fakePositionService{
		UpdateFn: func(_ context.Context, id string, req position.UpdatePositionRequest) (position.PositionResponse, error) {
			assert.Equal(t, posID, id)
			return position.PositionResponse{ID: id, Name: req.Name, Level: req.Level}, nil
		},
	}

	h := position.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPut, "/positions/"+posID, strings.NewReader(`{"name":"Lead","level":3}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: posID}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPositionHandler_Delete(t *testing.T) {
	posID := uuid.New().String()
	svc := &fakePositionService{
		DeleteFn: func(_ context.Context, id string) error {
			assert.Equal(t, posID, id)
			return nil
		},
	}

	h := position.NewHandler(svc)
	r := gin.New()
	r.DELETE("/positions/:id", h.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/positions/"+posID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
