package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/strumhaus/order-service/internal/config"
	"github.com/strumhaus/order-service/internal/entities"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
}

// kafkaHandler consumes checkout events published by the storefront and
// persists them through the same creation path as the HTTP API. Events that
// cannot be handled go to a dead-letter topic.
type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	creator  OrderCreator
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, creator OrderCreator) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		creator:  creator,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			} else {
				h.logger.Error("failed to fetch message", slog.Any("error", err))
				continue
			}
		}

		if err := h.handleCheckoutEvent(ctx, m); err != nil {
			eventsFailed.Inc()
			h.logger.Error("failed to handle checkout event", slog.Any("error", err))

			// В библиотеке уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			eventsDLQ.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleCheckoutEvent(ctx context.Context, m kafka.Message) error {
	start := time.Now()

	var event CheckoutEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal checkout event: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid checkout event: %w", err)
	}

	order := CreateOrderRequestToEntity(event.CreateOrderRequest, event.CustomerID)
	order.OrderID = event.OrderID

	if _, err := h.creator.CreateOrder(ctx, order); err != nil {
		return err
	}

	eventsProcessed.Inc()
	eventProcessingDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
