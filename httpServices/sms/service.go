package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"admission-portal/config"
	"admission-portal/logger"
)

var ErrSMSDisabled = errors.New("SMS service is not configured, set the Twilio credentials")

// Client sends SMS through the Twilio Messages API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
}

type twilioResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    int    `json:"code,omitempty"`
	ErrorMessage string `json:"message,omitempty"`
}

func NewClient(cfg config.TwilioConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    baseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
	}
	if !c.Enabled() {
		logger.Warning("Twilio SMS client initialized but disabled (missing credentials)")
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.accountSID != "" && c.authToken != "" && c.fromNumber != ""
}

// Send implements notification.Sender. The subject is not used for SMS.
func (c *Client) Send(ctx context.Context, phoneNumber, _ string, body string) error {
	if !c.Enabled() {
		return ErrSMSDisabled
	}

	data := url.Values{}
	data.Set("To", phoneNumber)
	data.Set("From", c.fromNumber)
	data.Set("Body", body)

	apiURL := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var twilioResp twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&twilioResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		errorMsg := fmt.Sprintf("Twilio API error (status %d)", resp.StatusCode)
		if twilioResp.ErrorMessage != "" {
			errorMsg += ": " + twilioResp.ErrorMessage
		}
		return errors.New(errorMsg)
	}

	logger.Info(fmt.Sprintf("SMS sent to %s. SID: %s, Status: %s", phoneNumber, twilioResp.SID, twilioResp.Status))
	return nil
}
