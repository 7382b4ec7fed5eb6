package fives_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/fives"
	fiveserrors "go-hrm/internal/fives/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFivesService struct {
	CreateFn        func(ctx context.Context, req fives.CreateInspectionRequest) (fives.InspectionResponse, error)
	UpdateFn        func(ctx context.Context, id string, req fives.UpdateInspectionRequest) (fives.InspectionResponse, error)
	DeleteFn        func(ctx context.Context, id string) error
	GetByIDFn       func(ctx context.Context, id string) (fives.InspectionResponse, error)
	GetAllFn        func(ctx context.Context, filter fives.InspectionFilter) ([]fives.InspectionResponse, error)
	RankingFn       func(ctx context.Context, month string) (fives.RankingResponse, error)
	MonthsFn        func(ctx context.Context) ([]string, error)
	ExportRankingFn func(ctx context.Context, month string) ([]byte, error)
	ReportRankingFn func(ctx context.Context, month string) ([]byte, error)
}

func (f *fakeFivesService) Create(ctx context.Context, req fives.CreateInspectionRequest) (fives.InspectionResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeFivesService) Update(ctx context.Context, id string, req fives.UpdateInspectionRequest) (fives.InspectionResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeFivesService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeFivesService) GetByID(ctx context.Context, id string) (fives.InspectionResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeFivesService) GetAll(ctx context.Context, filter fives.InspectionFilter) ([]fives.InspectionResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeFivesService) Ranking(ctx context.Context, month string) (fives.RankingResponse, error) {
	return f.RankingFn(ctx, month)
}
func (f *fakeFivesService) Months(ctx context.Context) ([]string, error) {
	return f.MonthsFn(ctx)
}
func (f *fakeFivesService) ExportRanking(ctx context.Context, month string) ([]byte, error) {
	return f.ExportRankingFn(ctx, month)
}
func (f *fakeFivesService) ReportRanking(ctx context.Context, month string) ([]byte, error) {
	return f.ReportRankingFn(ctx, month)
}

type errorEnvelope struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(r *gin.Engine, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestFivesHandler_Create(t *testing.T) {
	const deptID = "6f1c2a3e-5b4d-4c6e-8f7a-9b0c1d2e3f40"

	t.Run("explicit zero score is accepted", func(t *testing.T) {
		svc := &fakeFivesService{
			CreateFn: func(_ context.Context, req fives.CreateInspectionRequest) (fives.InspectionResponse, error) {
				require.NotNil(t, req.ScoreCleanliness)
				assert.Equal(t, 0, *req.ScoreCleanliness)
				return fives.InspectionResponse{ID: "i-1", TotalScore: 17}, nil
			},
		}
		r := setupRouter()
		r.POST("/inspections", fives.NewHandler(svc).Create)

		w := postJSON(r, "/inspections", `{"department_id":"`+deptID+`","inspector_name":"Ayu","inspection_date":"2024-06-12","score_improvement":9,"score_cleanliness":0,"score_innovation":8}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing score is a validation error", func(t *testing.T) {
		r := setupRouter()
		r.POST("/inspections", fives.NewHandler(&fakeFivesService{}).Create)

		w := postJSON(r, "/inspections", `{"department_id":"`+deptID+`","inspector_name":"Ayu","inspection_date":"2024-06-12","score_improvement":9,"score_innovation":8}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeFivesService{
			CreateFn: func(context.Context, fives.CreateInspectionRequest) (fives.InspectionResponse, error) {
				return fives.InspectionResponse{}, apperror.Describe(fiveserrors.ErrDuplicateInspection, "Ayu has already inspected QA in 2024-06")
			},
		}
		r := setupRouter()
		r.POST("/inspections", fives.NewHandler(svc).Create)

		w := postJSON(r, "/inspections", `{"department_id":"`+deptID+`","inspector_name":"Ayu","inspection_date":"2024-06-12","score_improvement":1,"score_cleanliness":1,"score_innovation":1}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Ayu has already inspected QA in 2024-06", env.Error.Message)
	})
}

func TestFivesHandler_GetAll(t *testing.T) {
	svc := &fakeFivesService{
		GetAllFn: func(_ context.Context, filter fives.InspectionFilter) ([]fives.InspectionResponse, error) {
			assert.Equal(t, "2024-06", filter.Month)
			assert.Equal(t, "ayu", filter.Inspector)
			return []fives.InspectionResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	}
	r := setupRouter()
	r.GET("/inspections", fives.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inspections?month=2024-06&inspector=ayu&page=2&page_size=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []fives.InspectionResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "3", env.Data[0].ID)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestFivesHandler_Ranking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeFivesService{
			RankingFn: func(_ context.Context, month string) (fives.RankingResponse, error) {
				assert.Equal(t, "2024-06", month)
				return fives.RankingResponse{Month: month, Departments: []fives.DepartmentRanking{{Rank: 1, DepartmentName: "QA"}}}, nil
			},
		}
		r := setupRouter()
		r.GET("/ranking", fives.NewHandler(svc).Ranking)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ranking?month=2024-06", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"department_name":"QA"`)
	})

	t.Run("invalid month", func(t *testing.T) {
		svc := &fakeFivesService{
			RankingFn: func(context.Context, string) (fives.RankingResponse, error) {
				return fives.RankingResponse{}, fiveserrors.ErrInvalidMonth
			},
		}
		r := setupRouter()
		r.GET("/ranking", fives.NewHandler(svc).Ranking)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ranking?month=june", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFivesHandler_ExportRanking(t *testing.T) {
	svc := &fakeFivesService{
		ExportRankingFn: func(context.Context, string) ([]byte, error) {
			return []byte("xlsx"), nil
		},
	}
	r := setupRouter()
	r.GET("/ranking/export", fives.NewHandler(svc).ExportRanking)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ranking/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "5s-ranking-all.xlsx")
}
