package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rrens/scribe-mock/internal/api/handler"
	customMiddleware "github.com/Rrens/scribe-mock/internal/api/middleware"
	"github.com/Rrens/scribe-mock/internal/config"
	"github.com/Rrens/scribe-mock/internal/domain"
	"github.com/Rrens/scribe-mock/internal/service"
)

// Dependencies are the stores and optional collaborators the router wires
// into its services. A nil Limiter disables rate limiting.
type Dependencies struct {
	Sessions domain.SessionRepository
	Chunks   domain.ChunkRepository
	Patients domain.PatientRepository
	Limiter  customMiddleware.Limiter
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(customMiddleware.Recover)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	// Initialize services
	uploadService := service.NewUploadService(deps.Sessions, deps.Chunks, cfg.Upload)
	inspectService := service.NewInspectService(deps.Sessions, deps.Chunks)
	patientService := service.NewPatientService(deps.Patients, deps.Sessions)
	catalogService := service.NewCatalogService()

	// Initialize handlers
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Upload.MaxChunkBytes)
	debugHandler := handler.NewDebugHandler(inspectService)
	patientHandler := handler.NewPatientHandler(patientService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	r.Get("/health", handler.HealthCheck)
	r.Get("/users/asd3fd2faec", catalogHandler.ResolveUser)

	r.Route("/v1", func(r chi.Router) {
		// Upload protocol
		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				r.Use(customMiddleware.NewRateLimitMiddleware(deps.Limiter).Limit)
			}

			r.Post("/upload-session", uploadHandler.CreateSession)
			r.Post("/get-presigned-url", uploadHandler.GetPresignedURL)
			r.Put("/upload-chunk/{sessionID}/{chunkNumber}", uploadHandler.UploadChunk)
			r.Post("/notify-chunk-uploaded", uploadHandler.NotifyChunkUploaded)
		})

		r.Route("/debug", func(r chi.Router) {
			r.Get("/session/{sessionID}/chunks", debugHandler.SessionChunks)
			r.Get("/chunks", debugHandler.AllChunks)
		})

		r.Get("/patients", patientHandler.List)
		r.Post("/add-patient-ext", patientHandler.Add)
		r.Get("/patient-details/{patientID}", patientHandler.Details)
		r.Get("/fetch-session-by-patient/{patientID}", patientHandler.SessionsByPatient)
		r.Get("/all-session", patientHandler.SessionsByUser)
		r.Get("/fetch-default-template-ext", catalogHandler.DefaultTemplates)
	})

	return r
}
