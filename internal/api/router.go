package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Harshitk-cp/veritas/internal/api/handlers"
	mw "github.com/Harshitk-cp/veritas/internal/api/middleware"
	"github.com/Harshitk-cp/veritas/internal/buildconfig"
	"github.com/Harshitk-cp/veritas/internal/config"
	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/llm"
	"github.com/Harshitk-cp/veritas/internal/media"
	"github.com/Harshitk-cp/veritas/internal/metrics"
	"github.com/Harshitk-cp/veritas/internal/service"
	"github.com/Harshitk-cp/veritas/internal/source"
	"github.com/Harshitk-cp/veritas/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer routes to.
type Deps struct {
	Verifier    handlers.Verifier
	OCR         domain.ImageTextExtractor
	Transcriber domain.AudioTranscriber
	Deepfake    domain.DeepfakeClassifier

	// Tenants enables Bearer auth on /v1 and the tenant bootstrap endpoint.
	// Nil runs the service open.
	Tenants domain.TenantStore
	DB      Pinger

	// AdminToken gates POST /v1/tenants. Empty leaves tenant creation to scripts/seed.go.
	AdminToken string

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	DefaultLLMKey  string
	MediaKey       string
	ShareLLMKey    bool
	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *zap.Logger
}

// App holds the router and the pipeline it serves.
type App struct {
	Router   *chi.Mux
	Pipeline *service.Pipeline
}

// NewApp builds the whole service from config. db may be nil.
func NewApp(db *pgxpool.Pool, logger *zap.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	httpClient := &http.Client{}
	pipeline, err := NewPipeline(httpClient, m, logger)
	if err != nil {
		return nil, err
	}

	deps := Deps{
		Verifier:       pipeline,
		OCR:            media.NewVisionOCR(config.MediaBaseURL(), config.VisionModel(), httpClient, logger),
		Transcriber:    media.NewTranscriber(config.MediaBaseURL(), config.TranscriptionModel(), httpClient, logger),
		Deepfake:       media.NewDeepfakeClient(config.DeepfakeClassifierURL(), httpClient, logger),
		Metrics:        m,
		Gatherer:       reg,
		DefaultLLMKey:  config.LLMAPIKey(),
		MediaKey:       config.MediaAPIKey(),
		ShareLLMKey:    config.MediaSharesLLMKey(),
		MaxUploadBytes: config.MaxUploadBytes(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
		Logger:         logger,
	}
	if db != nil {
		tenantStore := store.NewTenantStore(db)
		deps.Tenants = tenantStore
		deps.DB = tenantStore
		deps.AdminToken = config.AdminToken()
	}

	return &App{Router: NewRouter(deps), Pipeline: pipeline}, nil
}

// NewPipeline wires the verification pipeline from config: the LLM client
// for the configured provider and the five evidence adapters.
func NewPipeline(httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) (*service.Pipeline, error) {
	llmProvider := config.LLMProvider()
	llmClient, err := llm.NewClient(llmProvider, config.LLMModel(), httpClient)
	if err != nil {
		return nil, err
	}
	logger.Info("LLM client initialized", zap.String("provider", llmProvider))

	adapters := source.NewAdapters(source.Config{
		WebSearchURL:    config.WebSearchURL(),
		WikipediaURL:    config.WikipediaURL(),
		FactCheckURL:    config.FactCheckURL(),
		NewsURL:         config.NewsURL(),
		SnopesURL:       config.SnopesURL(),
		FactCheckAPIKey: config.GoogleFactCheckAPIKey(),
		NewsAPIKey:      config.NewsAPIKey(),
		HTTPClient:      httpClient,
	}, logger, m)

	aggregator := service.NewAggregator(adapters, config.EvidenceTimeout(), logger)
	return service.NewPipeline(llmClient, aggregator, config.LLMTimeout(), m, logger), nil
}

func NewRouter(d Deps) *chi.Mux {
	verifyHandler := handlers.NewVerifyHandler(d.Verifier, d.DefaultLLMKey)
	mediaHandler := handlers.NewMediaHandler(d.Verifier, d.OCR, d.Transcriber, d.Deepfake,
		d.DefaultLLMKey, d.MediaKey, d.ShareLLMKey, d.MaxUploadBytes, d.Logger)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)                                   // Generate/extract request ID first
	r.Use(middleware.RealIP)                              // Extract real IP
	r.Use(mw.Metrics(d.Metrics))                          // Collect metrics
	r.Use(mw.Logging(d.Logger))                           // Log all requests
	r.Use(middleware.Recoverer)                           // Recover from panics
	r.Use(mw.RateLimit(d.RateLimitRPS, d.RateLimitBurst)) // Rate limiting

	// Health (no auth)
	r.Get("/health", healthHandler(d.DB, d.Logger))

	// Metrics (no auth)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Tenant creation (admin token)
	if d.Tenants != nil && d.AdminToken != "" {
		r.With(mw.AdminAuth(d.AdminToken)).Post("/v1/tenants", handlers.NewTenantHandler(d.Tenants).Create)
	}

	r.Route("/v1", func(r chi.Router) {
		if d.Tenants != nil {
			r.Use(mw.APIKeyAuth(d.Tenants))
		}

		r.Post("/verify", verifyHandler.Verify)
		r.Post("/verify/image", mediaHandler.VerifyImage)
		r.Post("/verify/audio", mediaHandler.VerifyAudio)
		r.Post("/deepfake", mediaHandler.Deepfake)
	})

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:   "ok",
			Database: "disabled",
			Version:  buildconfig.Version(),
			Commit:   buildconfig.Commit(),
		}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Error("database health check failed", zap.Error(err))
				resp.Status = "error"
				resp.Database = "error"
				status = http.StatusServiceUnavailable
			} else {
				resp.Database = "ok"
			}
		}

		writeJSON(w, status, resp)
	}
}
