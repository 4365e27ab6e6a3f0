// Package hook é o ponto de entrada chamado pelo motor de captura uma vez
// por transação: ativação, filtro, extração e envio, nessa ordem.
package hook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raywall/callkpi-adapter/pkg/capture"
	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/raywall/callkpi-adapter/pkg/kpi"
	"github.com/raywall/callkpi-adapter/pkg/metrics"
	"github.com/rs/zerolog"
)

// Handler é o contrato que o motor de captura conhece.
type Handler interface {
	OnEvent(ctx context.Context, ev capture.Event)
}

// Emitter grava um ponto no destino. Implementado por influx.Writer.
type Emitter interface {
	Emit(ctx context.Context, dest config.InfluxConf, m kpi.MetricSet, t kpi.TagSet) error
}

// Hook compõe o pipeline. Todo o estado é definido em New e só lido depois,
// então um mesmo Hook pode ser chamado de várias goroutines.
type Hook struct {
	dest     config.InfluxConf
	active   bool
	sink     Emitter
	logger   zerolog.Logger
	recorder *metrics.Recorder
}

var _ Handler = (*Hook)(nil)

// New calcula a flag de ativação uma única vez. Se faltar alguma variável
// obrigatória, o diagnóstico é logado aqui e o hook fica inativo para sempre.
func New(dest config.InfluxConf, sink Emitter, logger zerolog.Logger, recorder *metrics.Recorder) *Hook {
	h := &Hook{
		dest:     dest,
		sink:     sink,
		logger:   logger.With().Str("component", "hookSendMetrics").Logger(),
		recorder: recorder,
	}

	if err := config.CheckActivation(dest); err != nil {
		h.logger.Error().Err(err).Msg("Uma ou mais variáveis obrigatórias do InfluxDB estão ausentes. Envio de métricas desativado.")
		return h
	}

	h.active = true
	return h
}

// Active informa o estado da flag de ativação.
func (h *Hook) Active() bool {
	return h.active
}

// OnEvent processa um item capturado. Nunca retorna erro nem propaga falhas:
// erros de extração e de envio são logados e descartados, assim como um
// panic vindo do Emitter.
func (h *Hook) OnEvent(ctx context.Context, ev capture.Event) {
	defer h.recoverPanic(ctx)

	h.recorder.Received()

	if !h.active {
		h.recorder.Skipped(metrics.ReasonInactive)
		return
	}
	if err := kpi.CheckProtocol(ev); err != nil {
		h.handle(ctx, err)
		return
	}
	if !kpi.IsEligible(ev) {
		h.recorder.Skipped(metrics.ReasonProtocol)
		return
	}

	h.handle(ctx, h.process(ctx, ev))
}

// OnPayload decodifica o JSON vindo de um transporte e despacha o evento.
// Payload inválido é tratado como erro de extração.
func (h *Hook) OnPayload(ctx context.Context, payload []byte) {
	ev, err := capture.Decode(payload)
	if err != nil {
		h.recorder.Received()
		if !h.active {
			h.recorder.Skipped(metrics.ReasonInactive)
			return
		}
		h.handle(ctx, &kpi.ExtractionError{Field: "payload", Err: err})
		return
	}
	h.OnEvent(ctx, ev)
}

func (h *Hook) process(ctx context.Context, ev capture.Event) error {
	m, tags, err := kpi.Extract(ev)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := h.sink.Emit(ctx, h.dest, m, tags); err != nil {
		var emitErr *kpi.EmitError
		if !errors.As(err, &emitErr) {
			err = &kpi.EmitError{Err: err}
		}
		return err
	}
	h.recorder.Emitted(time.Since(start))
	return nil
}

func (h *Hook) recoverPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	h.recorder.Failed(metrics.FailurePanic)
	h.loggerFor(ctx).Error().
		Str("error_type", "panic").
		Str("panic", fmt.Sprint(r)).
		Msg("hookSendMetrics")
}

// loggerFor prefere o logger do contexto (com correlation id do transporte).
func (h *Hook) loggerFor(ctx context.Context) *zerolog.Logger {
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		return &h.logger
	}
	l := log.With().Str("component", "hookSendMetrics").Logger()
	return &l
}

func (h *Hook) handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	log := h.loggerFor(ctx)

	var extErr *kpi.ExtractionError
	var emitErr *kpi.EmitError
	switch {
	case errors.As(err, &extErr):
		h.recorder.Failed(metrics.FailureExtraction)
		log.Error().Err(err).Str("error_type", "extraction").Msg("hookSendMetrics")
	case errors.As(err, &emitErr):
		h.recorder.Failed(metrics.FailureEmit)
		log.Error().Err(err).Str("error_type", "emit").Msg("hookSendMetrics")
	default:
		log.Error().Err(err).Msg("hookSendMetrics")
	}
}
