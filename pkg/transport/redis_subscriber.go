package transport

import (
	"context"
	"fmt"

	"github.com/raywall/callkpi-adapter/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisClient cria o client usado pelo subscriber.
func NewRedisClient(cfg config.RuntimeConf) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
}

// RedisSubscriber assina um canal pub/sub onde o motor de captura publica
// cada item como JSON.
type RedisSubscriber struct {
	client     *redis.Client
	channel    string
	dispatcher Dispatcher
	logger     zerolog.Logger
}

func NewRedisSubscriber(client *redis.Client, channel string, d Dispatcher, logger zerolog.Logger) *RedisSubscriber {
	return &RedisSubscriber{
		client:     client,
		channel:    channel,
		dispatcher: d,
		logger:     logger.With().Str("component", "redis_subscriber").Str("channel", channel).Logger(),
	}
}

// Start assina o canal e bloqueia até o contexto ser cancelado.
func (s *RedisSubscriber) Start(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Receive confirma a assinatura antes de começar a consumir
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("falha ao assinar canal redis '%s': %w", s.channel, err)
	}

	s.logger.Info().Msg("Consumindo itens capturados do Redis")
	s.consume(ctx, pubsub.Channel())
	return nil
}

func (s *RedisSubscriber) consume(ctx context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Parando consumo Redis")
			return
		case msg, ok := <-messages:
			if !ok {
				s.logger.Warn().Msg("Canal redis fechado")
				return
			}
			s.dispatcher.OnPayload(ctx, []byte(msg.Payload))
		}
	}
}
