package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raywall/callkpi-adapter/pkg/config/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func validInflux() InfluxConf {
	return InfluxConf{
		URL:         "http://influxdb:8086",
		Token:       "secret-token",
		Org:         "acme",
		Bucket:      DefaultBucket,
		Measurement: DefaultMeasurement,
	}
}

func TestLoadWithLookup_Defaults(t *testing.T) {
	cfg, err := LoadWithLookup(context.Background(), lookupFrom(map[string]string{
		"INFLUXDB_URL":   "http://influxdb:8086",
		"INFLUXDB_TOKEN": "secret-token",
		"INFLUXDB_ORG":   "acme",
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, "Kubeshark", cfg.Influx.Bucket)
	assert.Equal(t, "callKPIs", cfg.Influx.Measurement)
	assert.Equal(t, 10*time.Second, cfg.Influx.Timeout)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "local", cfg.Runtime.Mode)
	assert.Equal(t, 8080, cfg.Runtime.Port)
	assert.False(t, cfg.Metrics.Datadog.Enabled)
	assert.True(t, IsActive(cfg.Influx))
}

func TestLoadWithLookup_Overrides(t *testing.T) {
	cfg, err := LoadWithLookup(context.Background(), lookupFrom(map[string]string{
		"INFLUXDB_BUCKET":      "k8s",
		"INFLUXDB_MEASUREMENT": "apiCalls",
		"LOG_FORMAT":           "console",
		"RUNTIME":              "sqs",
		"SQS_QUEUE_URL":        "https://sqs.us-east-1.amazonaws.com/123/items",
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, "k8s", cfg.Influx.Bucket)
	assert.Equal(t, "apiCalls", cfg.Influx.Measurement)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqs", cfg.Runtime.Mode)
}

func TestLoadWithLookup_MissingDestinationIsNotAnError(t *testing.T) {
	cfg, err := LoadWithLookup(context.Background(), lookupFrom(nil), nil)
	require.NoError(t, err)
	assert.False(t, IsActive(cfg.Influx))
}

func TestLoadWithLookup_ResolvesReferences(t *testing.T) {
	inj := injector.New(map[string]injector.Resolver{
		"ssm": func(_ context.Context, key string) (string, error) {
			return "token-from-" + key, nil
		},
	})

	cfg, err := LoadWithLookup(context.Background(), lookupFrom(map[string]string{
		"INFLUXDB_TOKEN": "${ssm./callkpi/token}",
	}), inj)
	require.NoError(t, err)
	assert.Equal(t, "token-from-/callkpi/token", cfg.Influx.Token)
}

func TestLoadWithLookup_InvalidAmbientSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Nivel de log invalido", map[string]string{"LOG_LEVEL": "verbose"}},
		{"Runtime desconhecido", map[string]string{"RUNTIME": "kafka"}},
		{"SQS sem fila", map[string]string{"RUNTIME": "sqs"}},
		{"Porta invalida", map[string]string{"PORT": "70000"}},
		{"Timeout negativo", map[string]string{"INFLUXDB_TIMEOUT": "-1s"}},
		{"Timeout mal formatado", map[string]string{"INFLUXDB_TIMEOUT": "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithLookup(context.Background(), lookupFrom(tt.env), nil)
			assert.Error(t, err)
		})
	}
}

func TestCheckActivation(t *testing.T) {
	t.Run("Completo", func(t *testing.T) {
		assert.NoError(t, CheckActivation(validInflux()))
		assert.True(t, IsActive(validInflux()))
	})

	tests := []struct {
		name    string
		mutate  func(*InfluxConf)
		missing []string
	}{
		{"Sem URL", func(c *InfluxConf) { c.URL = "" }, []string{"INFLUXDB_URL"}},
		{"Sem token", func(c *InfluxConf) { c.Token = "" }, []string{"INFLUXDB_TOKEN"}},
		{"Sem org", func(c *InfluxConf) { c.Org = "" }, []string{"INFLUXDB_ORG"}},
		{"Sem nada", func(c *InfluxConf) { *c = InfluxConf{} }, []string{"INFLUXDB_URL", "INFLUXDB_TOKEN", "INFLUXDB_ORG"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validInflux()
			tt.mutate(&cfg)

			err := CheckActivation(cfg)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.missing, cfgErr.Missing)
			assert.False(t, IsActive(cfg))
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	cfg := &AdapterConfig{
		Logging: LoggingConf{Enabled: true, Level: "info", Format: "json"},
		Metrics: MetricsConf{Datadog: DatadogConf{Enabled: true, Addr: ""}},
		Runtime: RuntimeConf{Mode: "local", Port: 8080, Route: "/events"},
	}

	err := validator.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DD_AGENT_HOST")

	cfg.Metrics.Datadog.Addr = "localhost:8125"
	assert.NoError(t, validator.Validate(cfg))

	assert.Error(t, validator.Validate(nil))
}
