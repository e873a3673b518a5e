package config

import "os"

// Backend names accepted in TRANSLATION_BACKEND.
const (
	BackendSarvam = "sarvam"
	BackendLocal  = "local"
)

type Config struct {
	Port           string
	FrontendURL    string
	SarvamAPIKey   string
	SarvamAPIURL   string
	NetlifyPAT     string
	NetlifyAPIURL  string
	Backend        string
	LocalModelURL  string
	LocalModelName string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		FrontendURL:    getEnv("FRONTEND_URL", "*"),
		SarvamAPIKey:   os.Getenv("SARVAM_API_KEY"),
		SarvamAPIURL:   getEnv("SARVAM_API_URL", "https://api.sarvam.ai"),
		NetlifyPAT:     os.Getenv("NETLIFY_PAT"),
		NetlifyAPIURL:  getEnv("NETLIFY_API_URL", "https://api.netlify.com"),
		Backend:        getEnv("TRANSLATION_BACKEND", BackendSarvam),
		LocalModelURL:  getEnv("LOCAL_MODEL_URL", "http://localhost:11434/v1"),
		LocalModelName: getEnv("LOCAL_MODEL_NAME", "gemma2:9b"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
