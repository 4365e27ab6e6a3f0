package metrics

import "time"

// Recorder traduz os desfechos do pipeline em métricas do Provider.
//
// As métricas internas são best-effort: erros do Provider são descartados
// para nunca interferir no processamento do evento.
type Recorder struct {
	provider Provider
}

// NewRecorder cria um Recorder. Um provider nil resulta em um Recorder mudo.
func NewRecorder(provider Provider) *Recorder {
	return &Recorder{provider: provider}
}

func (r *Recorder) Received() {
	r.count(EventsReceived, nil)
}

// Skipped registra um evento ignorado (adaptador inativo ou protocolo não-http).
func (r *Recorder) Skipped(reason string) {
	r.count(EventsSkipped, []string{"reason:" + reason})
}

// Emitted registra um ponto gravado e o tempo gasto na escrita.
func (r *Recorder) Emitted(elapsed time.Duration) {
	r.count(EventsEmitted, nil)
	if r == nil || r.provider == nil {
		return
	}
	_ = r.provider.Histogram(EmitDuration, float64(elapsed.Milliseconds()), nil)
}

func (r *Recorder) Failed(kind string) {
	r.count(EventsFailed, []string{"error:" + kind})
}

func (r *Recorder) count(name string, tags []string) {
	if r == nil || r.provider == nil {
		return
	}
	_ = r.provider.Count(name, 1, tags)
}
