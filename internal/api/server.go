package api

import (
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/program"
	"time"
)

const maxBodyBytes = 1 << 20

type Server struct {
	processor *program.Processor
	store     repositories.AccountStore
	gatherer  prometheus.Gatherer
	devTools  bool
	logger    *zap.SugaredLogger
}

// NewServer exposes the processor over HTTP. devTools enables the token balance helper
// used to fund voters outside a real token program.
func NewServer(
	processor *program.Processor,
	store repositories.AccountStore,
	gatherer prometheus.Gatherer,
	devTools bool,
	logger *zap.SugaredLogger,
) *Server {
	return &Server{
		processor: processor,
		store:     store,
		gatherer:  gatherer,
		devTools:  devTools,
		logger:    logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthcheck", healthCheckHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Post("/instructions", s.submitInstruction)
	r.Get("/accounts/{address}", s.getAccount)
	r.Get("/proposals", s.listProposals)

	if s.devTools {
		r.Post("/dev/token-accounts", s.setTokenBalance)
	}

	return r
}

// NewHealthRouter serves only the liveness and metrics endpoints.
func NewHealthRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthcheck", healthCheckHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("I'm alive"))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debugw("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorw("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	response := errorResponse(err)

	if status == http.StatusInternalServerError {
		s.logger.Errorw("request failed", "error", err)
		response.Message = http.StatusText(status)
	}

	s.writeJSON(w, status, response)
}
