package broker

import (
	"github.com/MRabbani007/tasker/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Message is the broker-agnostic shape handed to consumers.
type Message struct {
	Subject string
	Data    []byte
}

var subscriptions []*nats.Subscription

// InitConsumer subscribes to the given subjects and forwards everything into
// one channel. The channel buffer absorbs bursts; overflow is dropped with a
// warning rather than blocking the NATS callback.
func InitConsumer(subjects []string) (<-chan Message, error) {
	if conn == nil {
		return nil, nats.ErrConnectionClosed
	}

	out := make(chan Message, 256)

	for _, subject := range subjects {
		sub, err := conn.Subscribe(subject, func(m *nats.Msg) {
			select {
			case out <- Message{Subject: m.Subject, Data: m.Data}:
			default:
				logger.Log.Warn("consumer channel full, dropping message",
					zap.String("subject", m.Subject))
			}
		})
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	logger.Log.Info("NATS consumer started", zap.Strings("subjects", subjects))
	return out, nil
}

// CloseAllConsumers unsubscribes every active subscription.
func CloseAllConsumers() {
	for _, sub := range subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			logger.Log.Warn("failed to unsubscribe", zap.Error(err))
		}
	}
	subscriptions = nil
}
