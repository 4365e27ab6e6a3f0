package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger global a partir das variáveis LOG_*.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return configureOutput(cfg, os.Stdout)
}

func configureOutput(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para uso local
	var output io.Writer = out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", "callkpi-adapter").
		Logger()
}
