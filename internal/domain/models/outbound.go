package models

// Delivery failure reasons reported by SummaryDelivery.
const (
	ReasonNoReports              = "NO_REPORTS"
	ReasonTransportNotConfigured = "TRANSPORT_NOT_CONFIGURED"
)

// SummaryDelivery is the outcome of mailing a daily summary. Exactly one of
// three shapes is produced:
//
//	{sent: true, messageId}
//	{sent: false, reason: NO_REPORTS}
//	{sent: false, reason: TRANSPORT_NOT_CONFIGURED, savedTo}
type SummaryDelivery struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
	SavedTo   string `json:"savedTo,omitempty"`
	Date      string `json:"date"`
}

// OutboundMessageRequest is a text digest pushed to a messaging recipient.
type OutboundMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}
