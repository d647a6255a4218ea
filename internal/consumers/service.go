package consumers

import (
	"context"
	"log/slog"
	"sort"

	"gymhub/internal/metrics"

	"github.com/nats-io/stan.go"
)

const queueGroup = "audit"

// Subscriber is the part of *messaging.NATSClient the consumer needs.
type Subscriber interface {
	SubscribeQueue(subject, queue string, handler stan.MsgHandler) (stan.Subscription, error)
}

type ConsumerService struct {
	nats     Subscriber
	handlers *Handlers
	metrics  *metrics.Metrics
	subs     []stan.Subscription
}

func NewConsumerService(nats Subscriber, handlers *Handlers, m *metrics.Metrics) *ConsumerService {
	return &ConsumerService{nats: nats, handlers: handlers, metrics: m}
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	routes := cs.handlers.Routes()
	subjects := make([]string, 0, len(routes))
	for subject := range routes {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		sub, err := cs.nats.SubscribeQueue(subject, queueGroup, cs.wrap(subject, routes[subject]))
		if err != nil {
			cs.unsubscribe()
			return err
		}
		cs.subs = append(cs.subs, sub)
	}

	slog.Info("All consumers started successfully", "subjects", subjects)
	return nil
}

// wrap acks only after the handler succeeded so NATS Streaming redelivers failures.
func (cs *ConsumerService) wrap(subject string, handle HandlerFunc) stan.MsgHandler {
	return func(m *stan.Msg) {
		err := handle(m.Data)
		cs.metrics.ObserveEvent(subject, err)
		if err != nil {
			slog.Error("Failed to handle event", "subject", subject, "sequence", m.Sequence, "error", err)
			return
		}
		if err := m.Ack(); err != nil {
			slog.Error("Failed to ack event", "subject", subject, "sequence", m.Sequence, "error", err)
		}
	}
}

func (cs *ConsumerService) unsubscribe() {
	for _, sub := range cs.subs {
		// Close keeps the durable position, Unsubscribe would drop it
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}
	cs.subs = nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")
	cs.unsubscribe()
	return ctx.Err()
}
