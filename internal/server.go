package internal

import (
	"context"
	"embed"
	"net/http"

	"itorg-api/internal/config"
	"itorg-api/internal/handlers"
	"itorg-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

//go:embed openapi
var openapiFS embed.FS

// Repository is the persistence the handlers need. *store.Store implements
// it.
type Repository interface {
	Ping(ctx context.Context) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectFields) (models.Project, error)
	UpdateProject(ctx context.Context, id int64, in models.ProjectFields) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ListTickets(ctx context.Context) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, in models.TicketFields) (models.Ticket, error)
	UpdateTicket(ctx context.Context, id int64, in models.TicketFields) (models.Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error

	ListAssets(ctx context.Context) ([]models.Asset, error)
	CreateAsset(ctx context.Context, in models.AssetFields) (models.Asset, error)
	CreateAssets(ctx context.Context, batch []models.AssetFields) ([]models.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in models.AssetFields) (models.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error

	Close() error
}

type Server struct {
	Repo    Repository
	Router  *chi.Mux
	Metrics *Metrics
	Logger  zerolog.Logger
	cfg     *config.Config
}

// NewServer wires the routes around an already opened repository. The
// server owns repo from here on and releases it in Close.
func NewServer(repo Repository, cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		Repo:    repo,
		Router:  chi.NewRouter(),
		Metrics: NewMetrics(),
		Logger:  logger,
		cfg:     cfg,
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(requestLogger(logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors)

	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", s.health)
	s.Router.Post("/auth/login", s.login)
	s.mountDocs(s.Router)

	s.Router.Route("/projects", func(r chi.Router) {
		r.Get("/", s.listProjects)
		r.Post("/", s.createProject)
		r.Put("/{id}", s.updateProject)
		r.Delete("/{id}", s.deleteProject)
	})
	s.Router.Route("/tickets", func(r chi.Router) {
		r.Get("/", s.listTickets)
		r.Post("/", s.createTicket)
		r.Put("/{id}", s.updateTicket)
		r.Delete("/{id}", s.deleteTicket)
	})
	s.Router.Route("/assets", func(r chi.Router) {
		r.Get("/", s.listAssets)
		r.Post("/", s.createAsset)
		r.Put("/{id}", s.updateAsset)
		r.Delete("/{id}", s.deleteAsset)
	})

	imports := handlers.NewImportsHandler(repo, cfg.ImportMaxBytes, s.Metrics.importedAssets)
	s.Router.Post("/imports/assets", imports.UploadExcel)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Close releases the repository.
func (s *Server) Close() error {
	if s.Repo != nil {
		return s.Repo.Close()
	}
	return nil
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// health always answers 200; a failed ping only changes the status field.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := s.Repo.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check: store unreachable")
		status = "degraded"
	}
	s.Metrics.storeUp.Set(boolGauge(status == "ok"))
	writeJSON(w, http.StatusOK, HealthResponse{Status: status})
}

// mountDocs serves the OpenAPI spec and Swagger UI
func (s *Server) mountDocs(mux *chi.Mux) {
	if !s.cfg.EnableSwagger {
		return
	}

	mux.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write(data)
	})

	mux.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>IT Org API - Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true,
                tryItOutEnabled: true
            });
        };
    </script>
</body>
</html>`))
	})
}
