package models

type TranslateRequest struct {
	Text           string `json:"text" validate:"required"`
	APIKey         string `json:"api_key" validate:"required"`
	TargetLanguage string `json:"target_language"`
}

type TranslateResponse struct {
	Success        bool   `json:"success"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type DetectRequest struct {
	Text   string `json:"text" validate:"required"`
	APIKey string `json:"api_key" validate:"required"`
}

type DetectResponse struct {
	Success      bool   `json:"success"`
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}
