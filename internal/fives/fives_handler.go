package fives

import (
	"net/http"

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
	l := zap.L().Named("fives.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("fives.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("fives request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInspectionRequest
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
	resp, err := h.service.GetAll(c.Request.Context(), InspectionFilter{
		Month:        c.Query("month"),
		Inspector:    c.Query("inspector"),
		DepartmentID: c.Query("department_id"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
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
	var req UpdateInspectionRequest
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

func (h *Handler) Ranking(c *gin.Context) {
	resp, err := h.service.Ranking(c.Request.Context(), c.Query("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Months(c *gin.Context) {
	resp, err := h.service.Months(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportRanking(c *gin.Context) {
	month := c.Query("month")
	body, err := h.service.ExportRanking(c.Request.Context(), month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, report.XLSXContentType, exportName("5s-ranking", month, "xlsx"), body)
}

func (h *Handler) ReportRanking(c *gin.Context) {
	month := c.Query("month")
	body, err := h.service.ReportRanking(c.Request.Context(), month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, report.PDFContentType, exportName("5s-ranking", month, "pdf"), body)
}

func exportName(prefix, month, ext string) string {
	if month == "" {
		month = RankingAllMonths
	}
	return prefix + "-" + month + "." + ext
}
