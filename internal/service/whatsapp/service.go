package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	client "github.com/mamadbah2/shiftreport/pkg/clients/whatsapp"
)

// MessagingService describes the outbound messaging operations.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	SendDailyDigest(ctx context.Context, date string, rows []models.DailySummaryRow) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client    client.TextSender
	recipient string
	logger    *zap.Logger
}

// NewMetaWhatsAppService wires a service that sends digests to recipient.
func NewMetaWhatsAppService(client client.TextSender, recipient string, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		client:    client,
		recipient: recipient,
		logger:    logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendDailyDigest pushes a compact text version of the day's summary.
func (s *MetaWhatsAppService) SendDailyDigest(ctx context.Context, date string, rows []models.DailySummaryRow) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.recipient,
		Message: FormatDigest(date, rows),
	})
}

// SendOutbound lets internal operators push quick notifications.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" {
		return errors.New("outbound recipient must not be empty")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	messageID, err := s.client.SendText(ctxWithTimeout, req.To, req.Message)
	if err != nil {
		return fmt.Errorf("send outbound message: %w", err)
	}

	s.logger.Info("outbound message sent", zap.String("to", req.To), zap.String("message_id", messageID))
	return nil
}

// FormatDigest renders summary rows as a short chat message.
func FormatDigest(date string, rows []models.DailySummaryRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shift summary %s\n", date)

	if len(rows) == 0 {
		b.WriteString("No reports submitted.")
		return b.String()
	}

	var visitors, calls, shifts int
	var revenue float64
	for _, row := range rows {
		fmt.Fprintf(&b, "- %s: %d shift(s), %d visitors, %d calls, %d social, revenue %.2f",
			row.EmployeeName, row.TotalShifts, row.TotalVisitors, row.TotalCalls, row.TotalSocialMedia, row.TotalDailyRevenue)
		if row.ProductivityAverage != nil {
			fmt.Fprintf(&b, ", productivity %.2f", *row.ProductivityAverage)
		}
		b.WriteString("\n")
		if len(row.Issues) > 0 {
			fmt.Fprintf(&b, "  issues: %s\n", strings.Join(row.Issues, " | "))
		}

		shifts += row.TotalShifts
		visitors += row.TotalVisitors
		calls += row.TotalCalls
		revenue += row.TotalDailyRevenue
	}

	fmt.Fprintf(&b, "Total: %d shift(s), %d visitors, %d calls, revenue %.2f", shifts, visitors, calls, revenue)
	return b.String()
}
