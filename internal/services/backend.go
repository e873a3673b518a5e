package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultTargetLanguage is used when a request does not name one.
const DefaultTargetLanguage = "en-IN"

// ErrInvalidInput marks caller mistakes (empty text and the like) so handlers
// can map them to 400 instead of 500.
var ErrInvalidInput = errors.New("invalid input")

type TranslationResult struct {
	TranslatedText string
	SourceLanguage string
}

// TranslationBackend is implemented by the hosted Sarvam client and the
// local-model client. The active backend is selected once at startup.
type TranslationBackend interface {
	Translate(ctx context.Context, text, targetLang string) (*TranslationResult, error)
	Detect(ctx context.Context, text string) (string, error)
}

// normalizeLanguageCode fills in the region suffix the translation engine
// expects when given a bare code (e.g. "hi" -> "hi-IN").
func normalizeLanguageCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultTargetLanguage
	}
	if !strings.Contains(code, "-") {
		return code + "-IN"
	}
	return code
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text must be a non-empty string", ErrInvalidInput)
	}
	return nil
}
