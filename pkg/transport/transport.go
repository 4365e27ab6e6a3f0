// Package transport entrega os itens capturados ao hook. Cada runtime
// (HTTP local, Lambda, SQS, Redis) só lê o payload e chama OnPayload;
// nenhum deles vê erros do pipeline.
package transport

import "context"

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	ContextKeyCorrID    = "correlation_id"
)

// Dispatcher é o lado do hook que os transportes conhecem.
type Dispatcher interface {
	OnPayload(ctx context.Context, payload []byte)
	Active() bool
}
