package transport

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LambdaHandler adapta eventos do API Gateway para o hook.
type LambdaHandler struct {
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(d Dispatcher, logger zerolog.Logger) *LambdaHandler {
	return &LambdaHandler{dispatcher: d, logger: logger}
}

// Handle processa a requisição Lambda. Assim como o ingest HTTP, sempre
// responde 202; só um body base64 inválido é recusado com 400.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	// O API Gateway pode ter normalizado o header para outro formato
	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		corrID = req.Headers["X-Correlation-Id"]
	}
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := h.logger.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	response := events.APIGatewayProxyResponse{
		StatusCode: http.StatusAccepted,
		Headers:    map[string]string{HeaderCorrelationID: corrID},
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.Warn().Err(err).Msg("Body base64 inválido")
			response.StatusCode = http.StatusBadRequest
			return response, nil
		}
		body = decoded
	}

	h.dispatcher.OnPayload(ctx, body)

	logger.Debug().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", response.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	return response, nil
}
