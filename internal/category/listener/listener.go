package listener

import (
	"context"
	"encoding/json"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/towechlabs/finance-category-service/internal/broker"
	"github.com/towechlabs/finance-category-service/internal/logger"
	"github.com/towechlabs/finance-category-service/internal/message"
	"go.uber.org/zap"
)

const correlationIDHeader = "correlation-id"

// CategoryListener consumes category requests from the broker and writes one
// response per request to the response topic, carrying over the inbound
// correlation id.
type CategoryListener struct {
	consumer  *broker.KafkaConsumer
	producer  *broker.KafkaProducer
	processor *Processor
	logger    logger.ZapLogger
}

func NewCategoryListener(consumer *broker.KafkaConsumer, producer *broker.KafkaProducer, processor *Processor, log logger.ZapLogger) *CategoryListener {
	return &CategoryListener{
		consumer:  consumer,
		producer:  producer,
		processor: processor,
		logger:    log,
	}
}

func (l *CategoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting category request listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping category request listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.handleMessage(ctx, msg)
		}
	}
}

func (l *CategoryListener) handleMessage(ctx context.Context, msg kafka.Message) {
	var req message.Request
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		l.logger.Error("Failed to unmarshal request", zap.Error(err))
		l.respond(ctx, msg, message.ErrorResponse("Malformed request", 422, nil))
		return
	}

	l.respond(ctx, msg, l.processor.Process(ctx, req))
}

func (l *CategoryListener) respond(ctx context.Context, inbound kafka.Message, resp message.Response) {
	value, err := json.Marshal(resp)
	if err != nil {
		l.logger.Error("Failed to marshal response", zap.Error(err))
		return
	}

	var headers []kafka.Header
	for _, h := range inbound.Headers {
		if h.Key == correlationIDHeader {
			headers = append(headers, h)
		}
	}

	if err := l.producer.WriteMessage(ctx, inbound.Key, value, headers...); err != nil {
		l.logger.Error("Failed to write response", zap.Error(err))
	}
}
