// webhooks.go
package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"threedbotics-bot/intent"
)

// fallbackReply is what the user sees when the resolver is down.
const fallbackReply = "Sorry, nagka-issue ako saglit. Try mo ulit in a moment. 🙂"

// Bot wires the webhook pipeline together: signature check, dedup,
// intent table, AI fallback, chunked send. One instance is constructed
// at startup and shared by all in-flight requests; the Deduplicator is
// the only mutable state.
type Bot struct {
	cfg      Config
	dedup    *Deduplicator
	intents  *intent.Table
	resolver Resolver
	sender   MessageSender
	store    *MessageStore
}

func NewBot(cfg Config, dedup *Deduplicator, intents *intent.Table, resolver Resolver, sender MessageSender, store *MessageStore) *Bot {
	return &Bot{
		cfg:      cfg,
		dedup:    dedup,
		intents:  intents,
		resolver: resolver,
		sender:   sender,
		store:    store,
	}
}

// handleHealth answers platform liveness probes.
func (b *Bot) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("3DBotics Messenger bot up ✅"))
}

// handleVerification handles Facebook's one-time webhook subscription
// handshake (GET requests).
func (b *Bot) handleVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "" || token == "" || challenge == "" {
		LogWarn("incomplete webhook verification parameters")
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if mode == "subscribe" && token == b.cfg.VerifyToken {
		LogInfo("✅ Webhook verification successful")
		w.Write([]byte(challenge))
		return
	}

	LogWarn("webhook verification failed")
	http.Error(w, "Invalid verification token", http.StatusForbidden)
}

// handleEvents processes signed event deliveries (POST requests). The
// signature middleware has already authenticated the raw body.
func (b *Bot) handleEvents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading body", http.StatusBadRequest)
		return
	}

	var event FacebookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		LogError("[%s] error parsing webhook JSON: %v", requestID, err)
		http.Error(w, "Invalid request body", http.StatusNotFound)
		return
	}

	if !isValidWebhookObject(event.Object) {
		LogWarn("[%s] unsupported webhook object: %s", requestID, event.Object)
		http.Error(w, "Unsupported webhook object", http.StatusNotFound)
		return
	}

	totalMessages := 0
	for _, entry := range event.Entry {
		totalMessages += len(entry.Messaging)
	}
	LogInfo("[%s] 📝 Webhook: %s, %d entries, %d messages",
		requestID, event.Object, len(event.Entry), totalMessages)

	// Events are handled strictly in payload order, one at a time.
	for _, entry := range event.Entry {
		for i, msg := range entry.Messaging {
			b.processEvent(r.Context(), msg, requestID, i)
		}
	}

	// Always 200 once events are handled: Facebook redelivers the whole
	// payload on non-2xx, which would repeat AI calls and sends for the
	// events that already succeeded.
	w.WriteHeader(http.StatusOK)
}

// processEvent handles one messaging event. Any failure is logged and
// swallowed here so one bad event can't fail the whole delivery.
func (b *Bot) processEvent(ctx context.Context, msg MessagingEntry, requestID string, index int) {
	defer func() {
		if rec := recover(); rec != nil {
			LogError("[%s] panic handling event %d: %v", requestID, index, rec)
		}
	}()

	if msg.Delivery != nil {
		LogDebug("[%s] skipping delivery receipt", requestID)
		return
	}
	if msg.Message == nil {
		LogDebug("[%s] skipping non-message event from %s", requestID, msg.Sender.ID)
		return
	}
	if b.dedup.IsDuplicate(msg.Message.Mid) {
		LogInfo("[%s] duplicate delivery of %s, skipping", requestID, msg.Message.Mid)
		return
	}
	if msg.Message.IsEcho {
		LogDebug("[%s] skipping echo of our own message %s", requestID, msg.Message.Mid)
		return
	}
	if msg.Sender.ID == "" || msg.Message.Text == "" {
		LogDebug("[%s] skipping non-text event from %q", requestID, msg.Sender.ID)
		return
	}

	LogInfo("[%s] 📨 message %d: sender=%s mid=%s text=%q",
		requestID, index, msg.Sender.ID, msg.Message.Mid, msg.Message.Text)
	b.store.LogInbound(ctx, msg.Sender.ID, msg.Message.Mid, msg.Message.Text)

	reply := b.resolveReply(ctx, msg.Message.Text, requestID)

	results := sendChunked(ctx, b.sender, msg.Sender.ID, reply, messageChunkLimit)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		LogWarn("[%s] %d/%d chunks failed for %s", requestID, failed, len(results), msg.Sender.ID)
	}

	b.store.LogOutbound(ctx, msg.Sender.ID, reply)
}

// resolveReply picks a canned intent reply when one matches (fast, no
// tokens) and falls back to the AI otherwise. A resolver failure becomes
// the generic fallback string, never an HTTP error.
func (b *Bot) resolveReply(ctx context.Context, text, requestID string) string {
	if reply, ok := b.intents.Match(text); ok {
		LogDebug("[%s] intent rule matched", requestID)
		return reply
	}

	reply, err := b.resolver.Resolve(ctx, text)
	if err != nil {
		LogError("[%s] resolver failed: %v", requestID, err)
		return fallbackReply
	}
	return reply
}
