// facebook.go
package main

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	signatureHeader = "X-Hub-Signature-256"
	signaturePrefix = "sha256="

	graphSendURL = "https://graph.facebook.com/v21.0/me/messages"
)

// verifySignature checks that body was signed by Meta with our app
// secret. The HMAC is computed over the exact bytes received, never a
// re-serialized payload. Comparison is constant-time; a missing header,
// missing secret, empty body, bad hex, or length mismatch all return
// false without leaking anything through timing.
//
// Policy: fail-closed. An unconfigured secret rejects every request.
func verifySignature(body []byte, header, secret string) bool {
	if secret == "" || header == "" || len(body) == 0 {
		return false
	}
	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}
	claimed, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return subtle.ConstantTimeCompare(claimed, mac.Sum(nil)) == 1
}

// signBody computes the header value Meta would send for body.
func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// validateFacebookRequest is middleware that buffers the raw body and
// rejects unsigned or tampered deliveries before any side effect runs.
func (b *Bot) validateFacebookRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Error reading body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !verifySignature(body, r.Header.Get(signatureHeader), b.cfg.AppSecret) {
			LogWarn("[%s] invalid or missing webhook signature from %s",
				middleware.GetReqID(r.Context()), r.RemoteAddr)
			http.Error(w, "Invalid signature", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// isValidWebhookObject checks the top-level payload kind. This bot only
// subscribes to page messaging.
func isValidWebhookObject(objectType string) bool {
	return objectType == "page"
}

// GraphSender sends messages to users through the Messenger Send API.
type GraphSender struct {
	apiURL    string
	pageToken string
	client    *http.Client
}

func NewGraphSender(pageToken string, client *http.Client) *GraphSender {
	return &GraphSender{
		apiURL:    graphSendURL,
		pageToken: pageToken,
		client:    client,
	}
}

// SendMessage delivers one text message to a recipient PSID.
func (s *GraphSender) SendMessage(ctx context.Context, recipientID, text string) error {
	payload := map[string]interface{}{
		"recipient": map[string]string{
			"id": recipientID,
		},
		"messaging_type": "RESPONSE",
		"message": map[string]string{
			"text": text,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating send payload: %v", err)
	}

	sendURL := fmt.Sprintf("%s?access_token=%s", s.apiURL, url.QueryEscape(s.pageToken))

	LogDebug("📤 Send API payload: %s", string(jsonData))

	req, err := http.NewRequestWithContext(ctx, "POST", sendURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating send request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending to Facebook: %v", err)
	}
	defer resp.Body.Close()

	fbResp, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facebook error (status %d): %s", resp.StatusCode, string(fbResp))
	}

	LogDebug("✅ Send API response (%d): %s", resp.StatusCode, string(fbResp))
	return nil
}
