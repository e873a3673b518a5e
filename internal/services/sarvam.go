package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const sarvamTranslateModel = "sarvam-translate:v1"

type sarvamTranslateRequest struct {
	Input              string `json:"input"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
	Model              string `json:"model"`
}

type sarvamTranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type sarvamIdentifyRequest struct {
	Input string `json:"input"`
}

type sarvamIdentifyResponse struct {
	LanguageCode string `json:"language_code"`
	ScriptCode   string `json:"script_code"`
}

// SarvamBackend calls the hosted Sarvam AI REST API. Each operation is a
// single HTTP call; the source language is detected before translating.
type SarvamBackend struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSarvamBackend(baseURL, apiKey string) *SarvamBackend {
	return &SarvamBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *SarvamBackend) Translate(ctx context.Context, text, targetLang string) (*TranslationResult, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	target := normalizeLanguageCode(targetLang)

	source, err := s.Detect(ctx, text)
	if err != nil {
		return nil, err
	}
	source = normalizeLanguageCode(source)

	var out sarvamTranslateResponse
	reqBody := sarvamTranslateRequest{
		Input:              text,
		SourceLanguageCode: source,
		TargetLanguageCode: target,
		Model:              sarvamTranslateModel,
	}
	if err := s.post(ctx, "/translate", reqBody, &out); err != nil {
		return nil, fmt.Errorf("translation service error: %w", err)
	}

	if strings.TrimSpace(out.TranslatedText) == "" {
		return nil, fmt.Errorf("translation service returned empty result")
	}

	return &TranslationResult{
		TranslatedText: out.TranslatedText,
		SourceLanguage: source,
	}, nil
}

func (s *SarvamBackend) Detect(ctx context.Context, text string) (string, error) {
	if err := validateText(text); err != nil {
		return "", err
	}

	var out sarvamIdentifyResponse
	if err := s.post(ctx, "/text-lid", sarvamIdentifyRequest{Input: text}, &out); err != nil {
		return "", fmt.Errorf("language detection service error: %w", err)
	}

	if strings.TrimSpace(out.LanguageCode) == "" {
		return "", fmt.Errorf("language detection service returned an invalid response")
	}

	return out.LanguageCode, nil
}

func (s *SarvamBackend) post(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-subscription-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sarvam %d from %s: %s", resp.StatusCode, path, bodyPreview(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("invalid JSON from %s: %v; body: %s", path, err, bodyPreview(bodyBytes))
	}

	return nil
}

func bodyPreview(body []byte) string {
	preview := string(body)
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	return preview
}
