// Package whatsapp posts plain text messages through the Meta Cloud API.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/shiftreport/internal/config"
)

// maxBodyLength is the Cloud API limit for a text message body.
const maxBodyLength = 4096

// TextSender delivers one text message and returns the id Meta assigned to it.
type TextSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Client talks to the phone number configured in config.WhatsAppConfig.
type Client struct {
	http    *resty.Client
	phoneID string
}

// NewClient retries transport failures and 5xx answers twice.
func NewClient(cfg config.WhatsAppConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/") + "/" + cfg.APIVersion).
		SetAuthToken(cfg.AccessToken).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(retryable)

	return &Client{http: rc, phoneID: cfg.PhoneNumberID}
}

func retryable(r *resty.Response, err error) bool {
	return err != nil || r.StatusCode() >= http.StatusInternalServerError
}

type sentMessages struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText posts body to the recipient. Bodies over the API limit are cut.
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", errors.New("recipient must not be empty")
	}
	if runes := []rune(body); len(runes) > maxBodyLength {
		body = string(runes[:maxBodyLength])
	}

	var sent sentMessages
	var failure graphError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"messaging_product": "whatsapp",
			"to":                to,
			"type":              "text",
			"text":              map[string]string{"body": body},
		}).
		SetResult(&sent).
		SetError(&failure).
		Post(c.phoneID + "/messages")
	if err != nil {
		return "", fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.IsError() {
		code := resp.StatusCode()
		if failure.Error.Code != 0 {
			code = failure.Error.Code
		}
		return "", fmt.Errorf("whatsapp api error: code=%d, message=%s", code, failure.Error.Message)
	}

	if len(sent.Messages) == 0 {
		return "", nil
	}
	return sent.Messages[0].ID, nil
}
