package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by VERITAS_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("VERITAS_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is optional. Without it the server runs without tenant auth.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func GroqAPIKey() string {
	return os.Getenv("GROQ_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func AnthropicAPIKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

// LLMProvider returns the configured LLM provider.
// Defaults to "groq" if not set.
// Valid values: groq, openai, anthropic, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "groq"
	}
	return p
}

// LLMModel returns the model override; empty means the provider default.
func LLMModel() string {
	return os.Getenv("LLM_MODEL")
}

// LLMAPIKey returns the default key for the configured LLM provider.
// Requests may carry their own key instead.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "openai":
		return OpenAIAPIKey()
	case "anthropic":
		return AnthropicAPIKey()
	case "mock":
		return "mock"
	default:
		return GroqAPIKey()
	}
}

const defaultMediaBaseURL = "https://api.groq.com/openai/v1"

// MediaBaseURL is the OpenAI-compatible endpoint used for OCR and
// transcription. Defaults to Groq.
func MediaBaseURL() string {
	u := os.Getenv("MEDIA_BASE_URL")
	if u == "" {
		return defaultMediaBaseURL
	}
	return u
}

// MediaSharesLLMKey reports whether OCR and transcription go to the same
// provider as the LLM, so a caller's LLM key is valid for both.
func MediaSharesLLMKey() bool {
	return LLMProvider() == "groq" && MediaBaseURL() == defaultMediaBaseURL
}

// MediaAPIKey returns the key for OCR and transcription calls.
// Falls back to GROQ_API_KEY.
func MediaAPIKey() string {
	if k := os.Getenv("MEDIA_API_KEY"); k != "" {
		return k
	}
	return GroqAPIKey()
}

func GoogleFactCheckAPIKey() string {
	return os.Getenv("GOOGLE_FACTCHECK_API_KEY")
}

func NewsAPIKey() string {
	return os.Getenv("NEWSAPI_API_KEY")
}

func WebSearchURL() string {
	return os.Getenv("WEB_SEARCH_URL")
}

func WikipediaURL() string {
	return os.Getenv("WIKIPEDIA_URL")
}

func FactCheckURL() string {
	return os.Getenv("FACTCHECK_URL")
}

func NewsURL() string {
	return os.Getenv("NEWS_URL")
}

func SnopesURL() string {
	return os.Getenv("SNOPES_URL")
}

// EvidenceTimeout bounds each evidence source call.
// Defaults to 5s if not set.
func EvidenceTimeout() time.Duration {
	return durationOr("EVIDENCE_TIMEOUT", 5*time.Second)
}

// LLMTimeout bounds each language model call.
// Defaults to 60s if not set.
func LLMTimeout() time.Duration {
	return durationOr("LLM_TIMEOUT", 60*time.Second)
}

func VisionModel() string {
	return os.Getenv("VISION_MODEL")
}

func TranscriptionModel() string {
	return os.Getenv("TRANSCRIPTION_MODEL")
}

// DeepfakeClassifierURL is the image classifier endpoint. Empty disables /v1/deepfake.
func DeepfakeClassifierURL() string {
	return os.Getenv("DEEPFAKE_CLASSIFIER_URL")
}

// MaxUploadBytes caps image and audio uploads.
// Defaults to 25 MiB if not set.
func MaxUploadBytes() int64 {
	n, err := strconv.ParseInt(os.Getenv("MAX_UPLOAD_BYTES"), 10, 64)
	if err != nil || n <= 0 {
		return 25 << 20
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 10 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 10
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func durationOr(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// AdminToken guards tenant creation over HTTP. Empty disables the endpoint.
func AdminToken() string {
	return os.Getenv("ADMIN_TOKEN")
}
