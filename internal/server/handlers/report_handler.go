package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/reporting"
	"github.com/mamadbah2/shiftreport/internal/service/reports"
)

// ReportService is the report surface used by the HTTP layer.
type ReportService interface {
	Submit(ctx context.Context, caller models.Identity, sub reports.Submission) (models.ShiftReport, bool, error)
	List(ctx context.Context, caller models.Identity, filter models.ReportFilter) ([]models.ShiftReport, error)
	Summary(ctx context.Context, caller models.Identity, filter models.ReportFilter) ([]models.DailySummaryRow, error)
	Delete(ctx context.Context, caller models.Identity, id string) error
	Employees(ctx context.Context) ([]models.Identity, error)
}

// SummarySender delivers the daily summary for a date.
type SummarySender interface {
	SendDailySummary(ctx context.Context, date string) (models.SummaryDelivery, error)
}

// ReportHandler serves report submission, listing and summaries.
type ReportHandler struct {
	reports   ReportService
	summaries SummarySender
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter. loc decides what
// "yesterday" means when a summary is requested without a date.
func NewReportHandler(reports ReportService, summaries SummarySender, loc *time.Location, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{
		reports:   reports,
		summaries: summaries,
		location:  loc,
		now:       time.Now,
		logger:    logger,
	}
}

// ListEmployees returns every employee without credentials.
func (h *ReportHandler) ListEmployees(c *gin.Context) {
	employees, err := h.reports.Employees(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// ListReports returns the reports visible to the caller.
func (h *ReportHandler) ListReports(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	list, err := h.reports.List(c.Request.Context(), callerFrom(c), filter)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if list == nil {
		list = []models.ShiftReport{}
	}
	c.JSON(http.StatusOK, list)
}

// SubmitReport creates or replaces the caller's report for a shift.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var sub reports.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.logger.Warn("invalid report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, created, err := h.reports.Submit(c.Request.Context(), callerFrom(c), sub)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, report)
}

// DeleteReport removes a report owned by the caller, or any report for managers.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.reports.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns per-employee aggregates for a date or a date range.
func (h *ReportHandler) Summary(c *gin.Context) {
	filter, err := periodFromQuery(c)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	rows, err := h.reports.Summary(c.Request.Context(), callerFrom(c), filter)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportSummary streams the period's workbook as an attachment.
func (h *ReportHandler) ExportSummary(c *gin.Context) {
	filter, err := periodFromQuery(c)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	list, err := h.reports.List(c.Request.Context(), callerFrom(c), filter)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	data, err := reporting.BuildWorkbook(list, reporting.BuildSummaryRows(list))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	fileName := reporting.WorkbookFileName(filter.Label())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, reporting.WorkbookMIME, data)
}

type sendSummaryRequest struct {
	Date string `json:"date"`
}

// SendSummary mails the summary for the requested date, yesterday by default.
func (h *ReportHandler) SendSummary(c *gin.Context) {
	var req sendSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid send-summary payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date := req.Date
	if date == "" {
		date = reporting.PreviousDay(h.now().In(h.location))
	}

	result, err := h.summaries.SendDailySummary(c.Request.Context(), date)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Info("summary requested",
		zap.String("date", date),
		zap.String("caller_id", callerFrom(c).ID),
		zap.Bool("sent", result.Sent))
	c.JSON(http.StatusOK, result)
}

// filterFromQuery reads the optional list filters.
func filterFromQuery(c *gin.Context) (models.ReportFilter, error) {
	filter := models.ReportFilter{
		Date:       c.Query("date"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		EmployeeID: c.Query("employeeId"),
	}

	for name, value := range map[string]string{"date": filter.Date, "from": filter.From, "to": filter.To} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, value); err != nil {
			return models.ReportFilter{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", models.ErrValidation, name)
		}
	}

	if raw := c.Query("shift"); raw != "" {
		shift, ok := models.ParseShift(raw)
		if !ok {
			return models.ReportFilter{}, fmt.Errorf("%w: unknown shift %q", models.ErrValidation, raw)
		}
		filter.Shift = shift
	}

	return filter, nil
}

// periodFromQuery requires either a date or a complete from/to range.
func periodFromQuery(c *gin.Context) (models.ReportFilter, error) {
	filter, err := filterFromQuery(c)
	if err != nil {
		return models.ReportFilter{}, err
	}
	if filter.Date == "" && (filter.From == "" || filter.To == "") {
		return models.ReportFilter{}, fmt.Errorf("%w: date or from/to range is required", models.ErrValidation)
	}
	if filter.Date == "" && filter.From > filter.To {
		return models.ReportFilter{}, fmt.Errorf("%w: from must not be after to", models.ErrValidation)
	}
	return filter, nil
}
