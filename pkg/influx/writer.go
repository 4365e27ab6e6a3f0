// Package influx implementa o envio dos pontos de KPI para o InfluxDB v2.
package influx

import (
	"context"
	"math"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/raywall/callkpi-adapter/pkg/kpi"
	"github.com/rs/zerolog"
)

// Writer grava um ponto por chamada usando a API de escrita bloqueante
// (sem batch e sem retry). Os clients HTTP são criados uma vez por
// destino e compartilhados entre goroutines.
type Writer struct {
	mu      sync.Mutex
	clients map[string]influxdb2.Client
	logger  zerolog.Logger
}

func NewWriter(logger zerolog.Logger) *Writer {
	return &Writer{
		clients: make(map[string]influxdb2.Client),
		logger:  logger.With().Str("component", "influx").Logger(),
	}
}

// Emit grava métricas e tags como um único ponto em dest.Measurement.
// Qualquer falha volta como *kpi.EmitError.
func (w *Writer) Emit(ctx context.Context, dest config.InfluxConf, m kpi.MetricSet, t kpi.TagSet) error {
	tags := t.Map()
	fields := m.Fields()

	point := influxdb2.NewPoint(dest.Measurement, tags, fields, time.Now())

	writeAPI := w.client(dest).WriteAPIBlocking(dest.Org, dest.Bucket)
	if err := writeAPI.WritePoint(ctx, point); err != nil {
		return &kpi.EmitError{Err: err}
	}

	w.logger.Debug().
		Str("bucket", dest.Bucket).
		Str("measurement", dest.Measurement).
		Interface("tags", tags).
		Interface("metrics", fields).
		Msg("Wrote")

	return nil
}

// Close encerra os clients abertos.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for key, c := range w.clients {
		c.Close()
		delete(w.clients, key)
	}
}

func (w *Writer) client(dest config.InfluxConf) influxdb2.Client {
	key := dest.URL + "|" + dest.Token

	w.mu.Lock()
	defer w.mu.Unlock()

	if c, ok := w.clients[key]; ok {
		return c
	}

	opts := influxdb2.DefaultOptions().SetHTTPRequestTimeout(timeoutSeconds(dest.Timeout))
	c := influxdb2.NewClientWithOptions(dest.URL, dest.Token, opts)
	w.clients[key] = c
	return c
}

// O client aceita o timeout em segundos inteiros; frações arredondam para cima.
func timeoutSeconds(d time.Duration) uint {
	if d <= 0 {
		return 0
	}
	return uint(math.Ceil(d.Seconds()))
}
