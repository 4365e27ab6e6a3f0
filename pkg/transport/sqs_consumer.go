package transport

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
)

// SQSClient define a interface necessária para o consumer (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSConsumer lê itens capturados de uma fila SQS e os entrega ao hook.
// Cada mensagem é apagada depois do despacho, tenha o envio falhado ou não:
// não há retry de pontos.
type SQSConsumer struct {
	client     SQSClient
	queueUrl   string
	dispatcher Dispatcher
	logger     zerolog.Logger
	retryDelay time.Duration
}

func NewSQSConsumer(client SQSClient, queueUrl string, d Dispatcher, logger zerolog.Logger) *SQSConsumer {
	return &SQSConsumer{
		client:     client,
		queueUrl:   queueUrl,
		dispatcher: d,
		logger:     logger.With().Str("component", "sqs_consumer").Logger(),
		retryDelay: 5 * time.Second,
	}
}

// Start inicia o long polling (bloqueante) até o contexto ser cancelado.
func (s *SQSConsumer) Start(ctx context.Context) {
	if s.queueUrl == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Consumer desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueUrl).Msg("Consumindo itens capturados da fila SQS")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Parando consumo SQS")
			return
		default:
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueUrl),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20, // Long polling
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Msgf("Erro no SQS. Retentando em %s...", s.retryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			s.dispatcher.OnPayload(ctx, []byte(aws.ToString(msg.Body)))

			if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueUrl),
				ReceiptHandle: msg.ReceiptHandle,
			}); err != nil {
				s.logger.Warn().Err(err).Str("message_id", aws.ToString(msg.MessageId)).Msg("Falha ao remover mensagem da fila")
			}
		}
	}
}
