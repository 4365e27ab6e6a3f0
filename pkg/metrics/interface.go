package metrics

// Provider define o contrato para envio das métricas internas do adaptador.
// Isso permite trocar Datadog por outro backend (ou Noop) sem alterar o hook.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
	Close() error
}

// Nomes das métricas internas (o namespace vem de DD_NAMESPACE).
const (
	EventsReceived = "events.received"
	EventsSkipped  = "events.skipped"
	EventsEmitted  = "events.emitted"
	EventsFailed   = "events.failed"
	EmitDuration   = "emit.duration_ms"
)

// Motivos de descarte e tipos de falha usados como tag.
const (
	ReasonInactive = "inactive"
	ReasonProtocol = "protocol"

	FailureExtraction = "extraction"
	FailureEmit       = "emit"
	FailurePanic      = "panic"
)
