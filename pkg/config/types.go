package config

import "time"

const (
	DefaultBucket      = "Kubeshark"
	DefaultMeasurement = "callKPIs"
)

// AdapterConfig representa a configuração completa do processo, lida do
// ambiente uma única vez na inicialização. Depois de carregada nunca é
// alterada, por isso pode ser compartilhada entre goroutines sem lock.
type AdapterConfig struct {
	Influx  InfluxConf
	Logging LoggingConf
	Metrics MetricsConf
	Runtime RuntimeConf
}

// InfluxConf contém as coordenadas do destino (bucket/measurement no InfluxDB).
// URL, Token e Org são obrigatórios para a ativação do adaptador.
type InfluxConf struct {
	URL         string        `env:"INFLUXDB_URL" validate:"required"`
	Token       string        `env:"INFLUXDB_TOKEN" validate:"required"`
	Org         string        `env:"INFLUXDB_ORG" validate:"required"`
	Bucket      string        `env:"INFLUXDB_BUCKET" envDefault:"Kubeshark"`
	Measurement string        `env:"INFLUXDB_MEASUREMENT" envDefault:"callKPIs"`
	Timeout     time.Duration `env:"INFLUXDB_TIMEOUT" envDefault:"10s"`
}

type LoggingConf struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool   `env:"DD_ENABLED" envDefault:"false"`
	Addr      string `env:"DD_AGENT_HOST" envDefault:"localhost:8125" validate:"required_if=Enabled true"`
	Namespace string `env:"DD_NAMESPACE" envDefault:"callkpi."`
}

// RuntimeConf escolhe por onde os eventos capturados chegam ao adaptador.
type RuntimeConf struct {
	Mode          string `env:"RUNTIME" envDefault:"local" validate:"oneof=local lambda sqs redis"`
	Port          int    `env:"PORT" envDefault:"8080" validate:"gt=0,lt=65536"`
	Route         string `env:"INGEST_ROUTE" envDefault:"/events" validate:"startswith=/"`
	SQSQueueURL   string `env:"SQS_QUEUE_URL" validate:"required_if=Mode sqs"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"kubeshark.items"`
}
