package envloader

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoad_StringFields(t *testing.T) {
	type Config struct {
		Bucket      string `env:"INFLUXDB_BUCKET" envDefault:"Kubeshark"`
		Measurement string `env:"INFLUXDB_MEASUREMENT" envDefault:"callKPIs"`
		URL         string `env:"INFLUXDB_URL"`
	}

	// Apenas defaults
	config := &Config{}
	require.NoError(t, LoadWithLookup(config, mapLookup(nil)))

	assert.Equal(t, "Kubeshark", config.Bucket)
	assert.Equal(t, "callKPIs", config.Measurement)
	assert.Equal(t, "", config.URL)

	// Variáveis definidas
	config2 := &Config{}
	err := LoadWithLookup(config2, mapLookup(map[string]string{
		"INFLUXDB_BUCKET":      "k8s",
		"INFLUXDB_MEASUREMENT": "apiCalls",
		"INFLUXDB_URL":         "http://influx:8086",
	}))
	require.NoError(t, err)

	assert.Equal(t, "k8s", config2.Bucket)
	assert.Equal(t, "apiCalls", config2.Measurement)
	assert.Equal(t, "http://influx:8086", config2.URL)
}

func TestLoad_EmptyValueFallsBackToDefault(t *testing.T) {
	type Config struct {
		Bucket string `env:"INFLUXDB_BUCKET" envDefault:"Kubeshark"`
	}

	config := &Config{}
	err := LoadWithLookup(config, mapLookup(map[string]string{"INFLUXDB_BUCKET": "  "}))
	require.NoError(t, err)

	assert.Equal(t, "Kubeshark", config.Bucket)
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	type Config struct {
		Org string `env:"INFLUXDB_ORG"`
	}

	t.Setenv("INFLUXDB_ORG", "acme")

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "acme", config.Org)
}

func TestLoad_NumericAndBoolFields(t *testing.T) {
	type Config struct {
		Port    int     `env:"PORT" envDefault:"8080"`
		Workers uint16  `env:"WORKERS" envDefault:"4"`
		Ratio   float64 `env:"RATIO" envDefault:"0.5"`
		Enabled bool    `env:"DD_ENABLED" envDefault:"false"`
	}

	config := &Config{}
	require.NoError(t, LoadWithLookup(config, mapLookup(map[string]string{
		"PORT":       "9090",
		"DD_ENABLED": "TRUE",
	})))

	assert.Equal(t, 9090, config.Port)
	assert.Equal(t, uint16(4), config.Workers)
	assert.Equal(t, 0.5, config.Ratio)
	assert.True(t, config.Enabled)
}

func TestLoad_DurationFields(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"INFLUXDB_TIMEOUT" envDefault:"10s"`
	}

	config := &Config{}
	require.NoError(t, LoadWithLookup(config, mapLookup(nil)))
	assert.Equal(t, 10*time.Second, config.Timeout)

	config2 := &Config{}
	require.NoError(t, LoadWithLookup(config2, mapLookup(map[string]string{"INFLUXDB_TIMEOUT": "250ms"})))
	assert.Equal(t, 250*time.Millisecond, config2.Timeout)
}

func TestLoad_NestedStructs(t *testing.T) {
	type Influx struct {
		URL string `env:"INFLUXDB_URL"`
	}
	type Datadog struct {
		Addr string `env:"DD_AGENT_HOST" envDefault:"localhost:8125"`
	}
	type Metrics struct {
		Datadog *Datadog
	}
	type Config struct {
		Influx  Influx
		Metrics Metrics
		Name    string // sem tag, deve ser ignorado
	}

	config := &Config{Name: "original"}
	require.NoError(t, LoadWithLookup(config, mapLookup(map[string]string{
		"INFLUXDB_URL": "http://localhost:8086",
	})))

	assert.Equal(t, "http://localhost:8086", config.Influx.URL)
	require.NotNil(t, config.Metrics.Datadog)
	assert.Equal(t, "localhost:8125", config.Metrics.Datadog.Addr)
	assert.Equal(t, "original", config.Name)
}

func TestLoad_InvalidConfig(t *testing.T) {
	var notPointer string
	err := Load(notPointer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")

	var notStruct int
	err = Load(&notStruct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")

	err = Load(nil)
	var invalid *InvalidConfigError
	assert.True(t, errors.As(err, &invalid))
}

func TestLoad_ConversionErrors(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"INFLUXDB_TIMEOUT"`
		Port    int           `env:"PORT"`
	}

	config := &Config{}
	err := LoadWithLookup(config, mapLookup(map[string]string{"INFLUXDB_TIMEOUT": "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error setting field Timeout")

	err = LoadWithLookup(&Config{}, mapLookup(map[string]string{"PORT": "http"}))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "PORT", fieldErr.EnvVar)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestLoad_UnsupportedType(t *testing.T) {
	type Config struct {
		Tags []string `env:"TAGS"`
	}

	err := LoadWithLookup(&Config{}, mapLookup(map[string]string{"TAGS": "a,b"}))
	var unsupported *UnsupportedTypeError
	assert.True(t, errors.As(err, &unsupported))
}

func TestMustLoad(t *testing.T) {
	type Config struct {
		Bucket string `env:"INFLUXDB_BUCKET" envDefault:"Kubeshark"`
	}

	config := &Config{}
	assert.NotPanics(t, func() {
		MustLoad(config)
	})

	assert.Panics(t, func() {
		MustLoad("not-a-pointer")
	})
}
