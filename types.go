// types.go
package main

// FacebookEvent represents the incoming webhook event from Facebook
type FacebookEvent struct {
	Object string      `json:"object"`
	Entry  []EntryData `json:"entry"`
}

// EntryData represents each entry in the webhook event. A single
// delivery may batch multiple messaging events.
type EntryData struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEntry `json:"messaging"`
}

// MessagingEntry represents one messaging event in the webhook payload
type MessagingEntry struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message  *MessageData  `json:"message"`
	Delivery *DeliveryData `json:"delivery"`
}

// MessageData represents the actual message content. Mid repeats when
// Facebook redelivers the same event.
type MessageData struct {
	Mid    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo"`
	AppId  int64  `json:"app_id"`
}

// DeliveryData represents a delivery receipt from Facebook
type DeliveryData struct {
	Mids      []string `json:"mids"`
	Watermark int64    `json:"watermark"`
}

type Config struct {
	PageToken   string // Meta page access token for outbound sends
	AppSecret   string // Meta app secret, signs every webhook body
	VerifyToken string
	OpenAIKey   string
	OpenAIModel string
	DatabaseURL string // optional, enables the message log
	Port        string
}
