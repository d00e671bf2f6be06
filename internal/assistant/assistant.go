// Package assistant wraps the OpenAI-compatible chat and image APIs behind
// the financial assistant operations.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"finanza/internal/core"
)

// Supported response languages.
const (
	LangSpanish = "es"
	LangEnglish = "en"
)

// Aspect ratios accepted for goal images.
const (
	AspectSquare    = "1:1"
	AspectLandscape = "16:9"
	AspectPortrait  = "9:16"
)

type Config struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	FastModel  string
	ImageModel string
}

// Source is a reference the model cited in a search answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult pairs the answer text with any cited sources.
type SearchResult struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

type Assistant struct {
	client     *openai.Client
	chatModel  string
	fastModel  string
	imageModel string
}

func New(cfg Config) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Assistant{
		client:     openai.NewClientWithConfig(clientCfg),
		chatModel:  cfg.ChatModel,
		fastModel:  cfg.FastModel,
		imageModel: cfg.ImageModel,
	}
}

// QuickAnalysis asks the fast model for three short savings tips based on a
// pre-rendered summary of the current window.
func (a *Assistant) QuickAnalysis(ctx context.Context, summary, lang string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.fastModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: quickAnalysisPrompt(summary, lang)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("quick analysis: %w", err)
	}
	return firstChoice(resp), nil
}

// Chat answers a free-form question with the user's transaction list as
// context.
func (a *Assistant) Chat(ctx context.Context, message string, txs []core.Transaction, lang, currency string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt(txs, lang, currency)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return firstChoice(resp), nil
}

// Advice asks the chat model for a detailed step-by-step strategy given the
// user's financial context.
func (a *Assistant) Advice(ctx context.Context, query, financialContext, lang string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: advicePrompt(financialContext, lang)},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("advice completion: %w", err)
	}
	return firstChoice(resp), nil
}

// Search answers a question about current financial information and extracts
// any URLs the model cited as sources.
func (a *Assistant) Search(ctx context.Context, query, lang string) (SearchResult, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: searchSystemPrompt(lang)},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search completion: %w", err)
	}

	text := firstChoice(resp)
	return SearchResult{Text: text, Sources: extractSources(text)}, nil
}

// GoalImage renders a savings-goal illustration and returns it as a data
// URL.
func (a *Assistant) GoalImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	size, err := imageSize(aspectRatio)
	if err != nil {
		return "", err
	}

	resp, err := a.client.CreateImage(ctx, openai.ImageRequest{
		Model:          a.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("generate image: empty response")
	}

	slog.InfoContext(ctx, "Goal image generated", "aspect_ratio", aspectRatio)
	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}

func firstChoice(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func imageSize(aspectRatio string) (string, error) {
	switch aspectRatio {
	case AspectSquare, "":
		return openai.CreateImageSize1024x1024, nil
	case AspectLandscape:
		return openai.CreateImageSize1792x1024, nil
	case AspectPortrait:
		return openai.CreateImageSize1024x1792, nil
	default:
		return "", fmt.Errorf("unsupported aspect ratio: %s", aspectRatio)
	}
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

func extractSources(text string) []Source {
	seen := make(map[string]bool)
	sources := []Source{}
	for _, uri := range urlPattern.FindAllString(text, -1) {
		uri = strings.TrimRight(uri, ".,;")
		if seen[uri] {
			continue
		}
		seen[uri] = true
		sources = append(sources, Source{Title: uri, URI: uri})
	}
	return sources
}
