package config

import (
	"fmt"
	"strings"
)

// ConfigurationError indica que uma ou mais variáveis obrigatórias do
// destino estão ausentes. Não é fatal: o adaptador apenas fica inativo
// durante toda a vida do processo.
type ConfigurationError struct {
	// Missing lista as variáveis de ambiente ausentes, ex: ["INFLUXDB_URL"].
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("variáveis obrigatórias do InfluxDB ausentes: %s", strings.Join(e.Missing, ", "))
}
