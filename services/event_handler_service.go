package services

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/logger"
	"github.com/MRabbani007/tasker/models"

	"go.uber.org/zap"
)

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents()
}

// EventHandlerService drains the outbox: undispatched event rows are
// published to the broker and marked dispatched. Publishing after commit
// means an event is never announced for a mutation that rolled back.
type EventHandlerService struct {
	db      *database.Database
	running atomic.Bool
	ticker  *time.Ticker
	done    chan struct{}
}

func NewEventHandlerService(db *database.Database, interval time.Duration) EventHandlerServiceInterface {
	if interval <= 0 {
		interval = time.Second
	}
	return &EventHandlerService{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
}

func (s *EventHandlerService) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	go s.ProcessPendingEvents()
}

func (s *EventHandlerService) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.ticker.Stop()
	close(s.done)
}

func (s *EventHandlerService) ProcessPendingEvents() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
		}

		var events []models.Event
		if err := s.db.DB.Where("dispatched = ?", false).Order("timestamp ASC").Find(&events).Error; err != nil {
			logger.Log.Error("failed to fetch pending events", zap.Error(err))
			continue
		}

		for _, event := range events {
			if err := s.dispatchEvent(event); err != nil {
				logger.Log.Error("failed to dispatch event",
					zap.String("event_id", event.ID.String()), zap.Error(err))
				continue
			}
		}
	}
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	var dataMap map[string]interface{}
	if err := json.Unmarshal(event.Data, &dataMap); err != nil {
		logger.Log.Warn("could not unmarshal event data", zap.Error(err))
		dataMap = make(map[string]interface{})
	}

	payload := map[string]interface{}{
		"event_id":  event.ID.String(),
		"timestamp": event.Timestamp,
		"type":      event.Event,
		"entity":    event.Entity,
		"user_id":   event.UserID.String(),
		"data":      dataMap,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	broker.PublishMessage(broker.TopicForEntity(event.Entity), payloadBytes)

	now := time.Now().UTC()
	return s.db.DB.Model(&models.Event{}).Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"dispatched":    true,
			"dispatched_at": &now,
		}).Error
}

var EventHandlerServiceInstance EventHandlerServiceInterface
