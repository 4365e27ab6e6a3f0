package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

var defaultValidator = NewValidator()

// NewValidator cria uma nova instância do validador.
// Os erros são reportados pelo nome da variável de ambiente (tag env),
// que é o que o operador precisa corrigir.
func NewValidator() *ConfigValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	return &ConfigValidator{validate: v}
}

// Validate realiza as validações estruturais (tags) e semânticas das seções
// de ambiente. A seção Influx fica de fora: dados de destino ausentes apenas
// desativam o adaptador (ver CheckActivation), não impedem o processo de subir.
func (cv *ConfigValidator) Validate(cfg *AdapterConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuração nula")
	}

	var errMsgs []string
	for _, section := range []interface{}{cfg.Logging, cfg.Metrics, cfg.Runtime} {
		if err := cv.validate.Struct(section); err != nil {
			var validationErrors validator.ValidationErrors
			if !errors.As(err, &validationErrors) {
				return fmt.Errorf("erro de validação estrutural: %w", err)
			}
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Variável '%s' falhou na regra '%s'", e.Field(), e.Tag()))
			}
		}
	}
	if len(errMsgs) > 0 {
		return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AdapterConfig) error {
	if cfg.Influx.Timeout < 0 {
		return fmt.Errorf("INFLUXDB_TIMEOUT não pode ser negativo: %s", cfg.Influx.Timeout)
	}
	if cfg.Runtime.Mode == "redis" && cfg.Runtime.RedisChannel == "" {
		return fmt.Errorf("REDIS_CHANNEL é obrigatório quando RUNTIME=redis")
	}
	return nil
}

// CheckActivation verifica se as variáveis obrigatórias do destino estão
// presentes. Retorna *ConfigurationError listando todas as que faltam.
func (cv *ConfigValidator) CheckActivation(cfg InfluxConf) error {
	err := cv.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("erro ao validar destino: %w", err)
	}

	missing := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		missing = append(missing, e.Field())
	}
	return &ConfigurationError{Missing: missing}
}

// CheckActivation usa o validador padrão do pacote.
func CheckActivation(cfg InfluxConf) error {
	return defaultValidator.CheckActivation(cfg)
}

// IsActive indica se URL, token e org estão todos presentes.
func IsActive(cfg InfluxConf) bool {
	return CheckActivation(cfg) == nil
}
