package broker

import (
	"github.com/MRabbani007/tasker/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var conn *nats.Conn

// InitProducer connects to the NATS server. The connection is shared by
// producer and consumers.
func InitProducer(url string) error {
	var err error
	conn, err = nats.Connect(url,
		nats.Name("tasker"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	logger.Log.Info("connected to NATS", zap.String("url", url))
	return nil
}

// PublishMessage publishes a payload to the given subject. Failures are
// logged, not returned: a missing broker must never fail the mutation that
// produced the event.
func PublishMessage(subject string, data []byte) {
	if conn == nil {
		logger.Log.Warn("NATS producer is not initialized")
		return
	}

	if err := conn.Publish(subject, data); err != nil {
		logger.Log.Error("failed to publish message",
			zap.String("subject", subject), zap.Error(err))
	}
}

func CloseProducer() {
	if conn != nil {
		conn.Drain()
		conn = nil
	}
}
