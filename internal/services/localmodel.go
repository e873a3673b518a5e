package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// LocalModelBackend runs translation and detection against an
// OpenAI-compatible local inference server (Ollama, llama.cpp). The server
// loads the model weights on its first generation, which can take a long
// time, so the client is warmed up once per process behind a sync.Once; a
// warm-up failure is sticky and surfaces on every later call.
type LocalModelBackend struct {
	baseURL string
	model   string

	once    sync.Once
	client  *openai.Client
	initErr error
}

func NewLocalModelBackend(baseURL, model string) *LocalModelBackend {
	return &LocalModelBackend{
		baseURL: baseURL,
		model:   model,
	}
}

func (l *LocalModelBackend) ensureClient(ctx context.Context) (*openai.Client, error) {
	l.once.Do(func() {
		cfg := openai.DefaultConfig("local")
		cfg.BaseURL = l.baseURL
		client := openai.NewClientWithConfig(cfg)

		_, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: l.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: "ping"},
			},
			MaxTokens: 1,
		})
		if err != nil {
			l.initErr = fmt.Errorf("local model warm-up failed: %w", err)
			return
		}

		l.client = client
	})

	if l.initErr != nil {
		return nil, l.initErr
	}
	return l.client, nil
}

func (l *LocalModelBackend) complete(ctx context.Context, prompt string) (string, error) {
	client, err := l.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("local model error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from local model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (l *LocalModelBackend) Translate(ctx context.Context, text, targetLang string) (*TranslationResult, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	target := normalizeLanguageCode(targetLang)
	prompt := fmt.Sprintf(`Translate the following text to %s.
Only respond with the translation, nothing else.

Text: %q

Translation:`, target, text)

	translated, err := l.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if translated == "" {
		return nil, fmt.Errorf("translation service returned empty result")
	}

	return &TranslationResult{
		TranslatedText: translated,
		SourceLanguage: "auto-detected",
	}, nil
}

func (l *LocalModelBackend) Detect(ctx context.Context, text string) (string, error) {
	if err := validateText(text); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Identify the language of the following text.
Only respond with the ISO 639-1 language code (two letters), nothing else.

Text: %q

Language code:`, text)

	answer, err := l.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	code := sanitizeLanguageCode(answer)
	if code == "" {
		return "", fmt.Errorf("language detection service returned an invalid response: %q", answer)
	}

	return code, nil
}

// sanitizeLanguageCode extracts a bare two/three-letter code from a model
// answer that may carry punctuation or extra words.
func sanitizeLanguageCode(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	if len(fields) == 0 {
		return ""
	}
	code := fields[0]
	if len(code) < 2 || len(code) > 3 {
		return ""
	}
	return code
}
