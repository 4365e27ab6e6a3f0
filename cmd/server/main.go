package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/callkpi-adapter/envloader"
	"github.com/raywall/callkpi-adapter/pkg/cloud"
	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/raywall/callkpi-adapter/pkg/config/injector"
	"github.com/raywall/callkpi-adapter/pkg/hook"
	"github.com/raywall/callkpi-adapter/pkg/influx"
	"github.com/raywall/callkpi-adapter/pkg/logger"
	"github.com/raywall/callkpi-adapter/pkg/metrics"
	"github.com/raywall/callkpi-adapter/pkg/observability"
	"github.com/raywall/callkpi-adapter/pkg/transport"
	"github.com/rs/zerolog"
)

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
	sqsStarter    = startSQSConsumer
	redisStarter  = startRedisSubscriber
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.LookupEnv); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, lookup envloader.LookupFunc) error {
	// 1. Carrega Configuração (uma única vez)
	cfg, err := config.LoadWithLookup(ctx, lookup, injector.Default(lookup))
	if err != nil {
		return err
	}

	// 2. Observabilidade
	appLog := logger.Configure(cfg.Logging)

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	defer provider.Close()

	// 3. Pipeline: destino + hook
	writer := influx.NewWriter(appLog)
	defer writer.Close()

	h := hook.New(cfg.Influx, writer, appLog, metrics.NewRecorder(provider))
	appLog.Info().
		Bool("active", h.Active()).
		Str("bucket", cfg.Influx.Bucket).
		Str("measurement", cfg.Influx.Measurement).
		Str("runtime", cfg.Runtime.Mode).
		Msg("Adaptador de KPIs iniciado")

	// 4. Seleciona Runtime Strategy
	switch cfg.Runtime.Mode {
	case "local":
		return serverStarter(cfg.Runtime, h, appLog)
	case "lambda":
		handler := transport.NewLambdaHandler(h, appLog)
		lambdaStarter(handler.Handle)
		return nil
	case "sqs":
		return sqsStarter(ctx, cfg.Runtime, h, appLog)
	case "redis":
		return redisStarter(ctx, cfg.Runtime, h, appLog)
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Runtime.Mode)
	}
}

func startSQSConsumer(ctx context.Context, cfg config.RuntimeConf, d transport.Dispatcher, lg zerolog.Logger) error {
	// região vem de AWS_REGION, lida pelo próprio SDK
	awsCfg, err := cloud.GetAWSConfig(ctx, "")
	if err != nil {
		return fmt.Errorf("falha ao carregar configuração AWS: %w", err)
	}

	transport.NewSQSConsumer(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL, d, lg).Start(ctx)
	return nil
}

func startRedisSubscriber(ctx context.Context, cfg config.RuntimeConf, d transport.Dispatcher, lg zerolog.Logger) error {
	client := transport.NewRedisClient(cfg)
	defer client.Close()

	return transport.NewRedisSubscriber(client, cfg.RedisChannel, d, lg).Start(ctx)
}
