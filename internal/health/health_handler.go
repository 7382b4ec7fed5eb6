package health

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	healtherrors "go-hrm/internal/health/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/report"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("health request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), HealthRecordFilter{
		EmployeeID: c.Query("employee_id"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]HealthRecordResponse, 0, len(resp))
		for _, r := range resp {
			if strings.Contains(strings.ToLower(r.EmployeeName), q) || strings.Contains(strings.ToLower(r.EmployeeCode), q) {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Dashboard(c *gin.Context) {
	days, ok := h.days(c)
	if !ok {
		return
	}

	resp, err := h.service.Dashboard(c.Request.Context(), days, time.Now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportAtRisk(c *gin.Context) {
	days, ok := h.days(c)
	if !ok {
		return
	}

	now := time.Now()
	body, err := h.service.ExportAtRisk(c.Request.Context(), days, now)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, report.XLSXContentType, "health-risk-report-"+now.Format("2006-01-02")+".xlsx", body)
}

func (h *Handler) ExportRecords(c *gin.Context) {
	body, err := h.service.ExportRecords(c.Request.Context(), HealthRecordFilter{
		EmployeeID: c.Query("employee_id"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, report.XLSXContentType, "health-records-"+time.Now().Format("2006-01-02")+".xlsx", body)
}

func (h *Handler) days(c *gin.Context) (int, bool) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(DefaultDashboardDays)))
	if err != nil {
		h.writeServiceError(c, healtherrors.ErrInvalidDays)
		return 0, false
	}
	return days, true
}
