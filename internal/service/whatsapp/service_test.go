package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	client "github.com/mamadbah2/shiftreport/pkg/clients/whatsapp"
)

type sentText struct {
	To   string
	Body string
}

type recordingClient struct {
	requests []sentText
	err      error
}

func (c *recordingClient) SendText(_ context.Context, to, body string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.requests = append(c.requests, sentText{To: to, Body: body})
	return "wamid.test", nil
}

var _ client.TextSender = (*recordingClient)(nil)

func TestSendDailyDigest(t *testing.T) {
	rc := &recordingClient{}
	svc := NewMetaWhatsAppService(rc, "2246000", nil)

	avg := 80.0
	err := svc.SendDailyDigest(context.Background(), "2024-05-01", []models.DailySummaryRow{
		{EmployeeName: "Amal", TotalShifts: 2, TotalVisitors: 7, TotalCalls: 3, TotalDailyRevenue: 210, ProductivityAverage: &avg, Issues: []string{"AC broken"}},
		{EmployeeName: "Zaid", TotalShifts: 1, TotalVisitors: 1},
	})
	require.NoError(t, err)

	require.Len(t, rc.requests, 1)
	assert.Equal(t, "2246000", rc.requests[0].To)
	body := rc.requests[0].Body
	assert.Contains(t, body, "Shift summary 2024-05-01")
	assert.Contains(t, body, "- Amal: 2 shift(s), 7 visitors, 3 calls, 0 social, revenue 210.00, productivity 80.00")
	assert.Contains(t, body, "issues: AC broken")
	assert.Contains(t, body, "Total: 3 shift(s), 8 visitors, 3 calls, revenue 210.00")
}

func TestSendOutbound_Errors(t *testing.T) {
	svc := NewMetaWhatsAppService(&recordingClient{}, "", nil)
	assert.Error(t, svc.SendDailyDigest(context.Background(), "2024-05-01", nil))

	svc = NewMetaWhatsAppService(&recordingClient{err: errors.New("timeout")}, "2246000", nil)
	assert.ErrorContains(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"}), "timeout")
}

func TestFormatDigest_Empty(t *testing.T) {
	assert.Equal(t, "Shift summary 2024-05-01\nNo reports submitted.", FormatDigest("2024-05-01", nil))
}
