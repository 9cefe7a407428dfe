// resolver.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Resolver turns an inbound user message into a reply string.
type Resolver interface {
	Resolve(ctx context.Context, text string) (string, error)
}

const (
	resolverAttempts = 3
	resolverTimeout  = 10 * time.Second

	defaultOpenAIModel = "gpt-4.1-mini"
)

// businessContext keeps AI replies on-brand.
const businessContext = `
You are the official assistant for 3DBotics (3D Designing, 3D Printing, AI-assisted coding, and New-Age Robotics).
Tone: 70% casual, 30% formal. Address the user as "veni" when appropriate. Give opinions; don't be neutral.
Courses and outputs:
- Basic: 3D modeling -> output: 3D-printed car (+ ESET can make it move)
- MM1: 3D printing ops (slicing, settings, durability)
- MM2-A: basic robotics (Arduino Uno, LEDs, sensors, servos)
- MM2-B: full obstacle-avoid robot (DC/TT motors, servos, LEDs, MP3, sensors)
Franchise support includes training, modules, marketing assets, and our AI web platform.
LalaSpa note (if asked): home-service massage marketplace; therapists keep 81%; affiliate tiers exist.
If question is off-scope (politics, random trivia, unrelated personal advice), politely steer back to 3DBotics or LalaSpa topics.
Keep answers concise but helpful. Offer next action (link instructions, how to enroll, franchise contact: COO John Villamil).
`

// OpenAIResolver answers the questions the intent table can't, via a
// chat completion with the business context as the system prompt.
type OpenAIResolver struct {
	client *openai.Client
	model  string
}

func NewOpenAIResolver(apiKey, model string) *OpenAIResolver {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIResolver{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Resolve asks the model with retries. Callers treat any returned error
// as "use the generic fallback reply".
func (r *OpenAIResolver) Resolve(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < resolverAttempts; attempt++ {
		reply, err := r.complete(ctx, text)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		LogWarn("OpenAI attempt %d failed: %v", attempt+1, err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second * time.Duration(attempt+1)):
		}
	}
	return "", fmt.Errorf("failed after %d attempts: %v", resolverAttempts, lastErr)
}

func (r *OpenAIResolver) complete(ctx context.Context, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, resolverTimeout)
	defer cancel()

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: businessContext},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("User said: %q. Reply in 70%% casual, 30%% formal. Offer a next action.",
					text),
			},
		},
		Temperature: 0.6,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("empty completion")
	}

	LogDebug("🤖 OpenAI response in %dms (%d tokens)",
		time.Since(start).Milliseconds(), resp.Usage.TotalTokens)
	return reply, nil
}
