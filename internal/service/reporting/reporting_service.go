package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/mailer"
)

// ReportLister is the read side of the report store.
type ReportLister interface {
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ShiftReport, error)
}

// SummaryPublisher appends a day's summary rows to an external sheet.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, date string, rows []models.DailySummaryRow) error
}

// DigestSender pushes a short text digest of a day's summary.
type DigestSender interface {
	SendDailyDigest(ctx context.Context, date string, rows []models.DailySummaryRow) error
}

// Options configures the optional parts of the reporting service.
type Options struct {
	Recipient string
	OutputDir string
	Publisher SummaryPublisher
	Digest    DigestSender
	Logger    *zap.Logger
}

// Service builds workbooks and delivers daily summaries.
type Service struct {
	reports   ReportLister
	transport mailer.Transport
	recipient string
	outputDir string
	publisher SummaryPublisher
	digest    DigestSender
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. transport may be nil, in
// which case summaries are saved under opts.OutputDir instead of mailed.
func NewService(reports ReportLister, transport mailer.Transport, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reports:   reports,
		transport: transport,
		recipient: opts.Recipient,
		outputDir: opts.OutputDir,
		publisher: opts.Publisher,
		digest:    opts.Digest,
		logger:    logger,
	}
}

// PreviousDay returns the calendar date before now in now's location.
func PreviousDay(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(models.DateLayout)
}

// ExportWorkbook renders every report matching filter. The file name is
// derived from the filter's period label.
func (s *Service) ExportWorkbook(ctx context.Context, filter models.ReportFilter) ([]byte, string, error) {
	reports, err := s.reports.ListReports(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("list reports: %w", err)
	}

	data, err := BuildWorkbook(reports, BuildSummaryRows(reports))
	if err != nil {
		return nil, "", err
	}
	return data, WorkbookFileName(filter.Label()), nil
}

// SendDailySummary mails the workbook for date. Without a transport the
// workbook is written to the output directory instead.
func (s *Service) SendDailySummary(ctx context.Context, date string) (models.SummaryDelivery, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.SummaryDelivery{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", models.ErrValidation, date)
	}

	reports, err := s.reports.ListReports(ctx, models.ReportFilter{Date: date})
	if err != nil {
		return models.SummaryDelivery{}, fmt.Errorf("list reports: %w", err)
	}
	if len(reports) == 0 {
		s.logger.Info("no reports to summarize", zap.String("date", date))
		return models.SummaryDelivery{Sent: false, Reason: models.ReasonNoReports, Date: date}, nil
	}

	rows := BuildSummaryRows(reports)
	data, err := BuildWorkbook(reports, rows)
	if err != nil {
		return models.SummaryDelivery{}, err
	}
	fileName := WorkbookFileName(date)

	s.publish(ctx, date, rows)

	if s.transport == nil {
		path, err := s.save(fileName, data)
		if err != nil {
			return models.SummaryDelivery{}, err
		}
		s.logger.Warn("mail transport not configured, workbook saved",
			zap.String("date", date), zap.String("path", path))
		return models.SummaryDelivery{
			Sent:    false,
			Reason:  models.ReasonTransportNotConfigured,
			SavedTo: path,
			Date:    date,
		}, nil
	}

	messageID, err := s.transport.Send(ctx, mailer.Message{
		To:      s.recipient,
		Subject: fmt.Sprintf("Shift reports summary for %s", date),
		Body:    fmt.Sprintf("Attached is the workbook with every shift report for %s.", date),
		Attachments: []mailer.Attachment{{
			Filename:    fileName,
			ContentType: WorkbookMIME,
			Data:        data,
		}},
	})
	if err != nil {
		return models.SummaryDelivery{}, fmt.Errorf("send summary for %s: %w", date, err)
	}

	s.logger.Info("daily summary sent",
		zap.String("date", date),
		zap.String("message_id", messageID),
		zap.Int("reports", len(reports)))

	return models.SummaryDelivery{Sent: true, MessageID: messageID, Date: date}, nil
}

// publish feeds the optional side channels. Their failures never fail delivery.
func (s *Service) publish(ctx context.Context, date string, rows []models.DailySummaryRow) {
	if s.publisher != nil {
		if err := s.publisher.PublishSummary(ctx, date, rows); err != nil {
			s.logger.Error("failed to publish summary to sheet", zap.String("date", date), zap.Error(err))
		}
	}
	if s.digest != nil {
		if err := s.digest.SendDailyDigest(ctx, date, rows); err != nil {
			s.logger.Error("failed to send summary digest", zap.String("date", date), zap.Error(err))
		}
	}
}

func (s *Service) save(fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.outputDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}
