package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/rs/zerolog"
)

// Limite de tamanho do item capturado aceito pelo ingest.
const maxPayloadBytes = 1 << 20

// NewRouter registra POST {route} para ingestão e GET /healthz.
func NewRouter(route string, d Dispatcher, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(ObservabilityMiddleware(logger))

	router.HandleFunc(route, ingestHandler(d)).Methods(http.MethodPost)
	router.HandleFunc("/healthz", healthHandler(d)).Methods(http.MethodGet)

	return router
}

func StartHTTPServer(cfg config.RuntimeConf, d Dispatcher, logger zerolog.Logger) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("route", cfg.Route).Msgf("Servidor HTTP ouvindo em %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg.Route, d, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// ingestHandler responde 202 sempre: o resultado do envio nunca volta ao
// motor de captura.
func ingestHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Falha ao ler o item capturado")
		} else {
			d.OnPayload(r.Context(), body)
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func healthHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"active": d.Active()})
	}
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga (ou gera) o correlation id e deixa um
// logger com esse id no contexto da requisição.
func ObservabilityMiddleware(base zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			corrID := r.Header.Get(HeaderCorrelationID)
			if corrID == "" {
				corrID = uuid.NewString()
			}
			w.Header().Set(HeaderCorrelationID, corrID)

			logger := base.With().Str("correlation_id", corrID).Logger()
			ctx := logger.WithContext(r.Context())
			ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

			wrapper := &responseWriterWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				startTime:      start,
			}

			next.ServeHTTP(wrapper, r.WithContext(ctx))

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("request completed")
		})
	}
}
