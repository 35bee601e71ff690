package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/shiftreport/internal/config"
	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

// Repository defines the raw operations supported by the Google Sheets adapter.
type Repository interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository implements Repository using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	return newRepository(ctx, cfg.SpreadsheetID, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
}

func newRepository(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRows appends the provided rows after the last filled row of sheetRange.
// Values are stored as sent, so date strings stay text and remain comparable
// when read back.
func (r *GoogleSheetRepository) AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// SummaryPublisher writes one spreadsheet row per employee for each day.
type SummaryPublisher struct {
	repo   Repository
	rng    string
	logger *zap.Logger
}

// NewSummaryPublisher publishes into sheetRange, e.g. "Daily Summary!A:Q".
func NewSummaryPublisher(repo Repository, sheetRange string, logger *zap.Logger) *SummaryPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryPublisher{repo: repo, rng: sheetRange, logger: logger}
}

// PublishSummary appends the rows for date unless that date was already
// published, so a manual resend after the nightly job does not duplicate rows.
func (p *SummaryPublisher) PublishSummary(ctx context.Context, date string, rows []models.DailySummaryRow) error {
	existing, err := p.repo.ReadRange(ctx, p.rng)
	if err != nil {
		return err
	}
	for _, row := range existing {
		if len(row) > 0 && fmt.Sprint(row[0]) == date {
			p.logger.Info("summary already published", zap.String("date", date))
			return nil
		}
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, summaryRow(date, row))
	}

	if err := p.repo.AppendRows(ctx, p.rng, values); err != nil {
		return err
	}
	p.logger.Info("summary published to sheet", zap.String("date", date), zap.Int("rows", len(values)))
	return nil
}

func summaryRow(date string, row models.DailySummaryRow) []interface{} {
	var productivity interface{} = ""
	if row.ProductivityAverage != nil {
		productivity = *row.ProductivityAverage
	}
	return []interface{}{
		date, row.EmployeeName, row.TotalShifts,
		row.TotalVisitors, row.TotalCalls, row.TotalSocialMedia, row.TotalInteraction,
		row.TotalEntry, row.TotalExit,
		row.TotalDailyRevenue, row.TotalRevenue, productivity,
		strings.Join(row.Needs, " | "),
		strings.Join(row.Notes, " | "),
		strings.Join(row.Tasks, " | "),
		strings.Join(row.Issues, " | "),
		strings.Join(row.HandoverNotes, " | "),
	}
}
