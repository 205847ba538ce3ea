package services

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/logger"
	"github.com/MRabbani007/tasker/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketServiceInterface defines the operations provided by the WebSocket service
type WebSocketServiceInterface interface {
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	BroadcastToUser(userID string, message []byte)
	SetBrokerInputChannel(ch <-chan broker.Message)
}

// Client represents a connected WebSocket client
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// WebSocketService pushes dispatched entity events to the owning user's
// connected clients. This is how stale views learn to refresh: ownership is
// strictly per user, so routing is by user id, never broadcast.
type WebSocketService struct {
	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader
	db       *database.Database
	topics   []string

	brokerMessages chan broker.Message
	brokerInput    <-chan broker.Message

	running  atomic.Bool
	stopChan chan struct{}
}

// NewWebSocketService creates a new WebSocket service
func NewWebSocketService(db *database.Database, topics []string) *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		db:     db,
		topics: topics,

		brokerMessages: make(chan broker.Message, 256),

		stopChan: make(chan struct{}),
	}
}

// SetBrokerInputChannel allows injecting a message source, useful for testing.
func (ws *WebSocketService) SetBrokerInputChannel(ch <-chan broker.Message) {
	ws.brokerInput = ch
}

func (ws *WebSocketService) Start() {
	if !ws.running.CompareAndSwap(false, true) {
		return
	}

	go ws.run()

	if ws.brokerInput != nil {
		go ws.forwardBrokerMessages(ws.brokerInput)
		return
	}

	ch, err := broker.InitConsumer(ws.topics)
	if err != nil {
		logger.Log.Warn("failed to initialize broker consumer, live updates disabled", zap.Error(err))
		return
	}
	go ws.forwardBrokerMessages(ch)
}

func (ws *WebSocketService) forwardBrokerMessages(ch <-chan broker.Message) {
	for msg := range ch {
		select {
		case <-ws.stopChan:
			return
		default:
		}
		select {
		case ws.brokerMessages <- msg:
		default:
			logger.Log.Warn("broker message channel full, discarding message")
		}
	}
}

// Stop gracefully shuts down the WebSocket service
func (ws *WebSocketService) Stop() {
	if !ws.running.CompareAndSwap(true, false) {
		return
	}

	close(ws.stopChan)

	ws.clientsMutex.Lock()
	for _, client := range ws.clients {
		if client != nil && client.Conn != nil {
			client.Conn.Close()
		}
	}
	ws.clientsMutex.Unlock()
}

// run handles the main client message hub
func (ws *WebSocketService) run() {
	for {
		select {
		case <-ws.stopChan:
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			logger.Log.Info("client connected",
				zap.String("client_id", client.ID), zap.String("user_id", client.UserID))

		case client := <-ws.unregister:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[client.ID]; ok {
				delete(ws.clients, client.ID)
				close(client.Send)
			}
			ws.clientsMutex.Unlock()

		case msg := <-ws.brokerMessages:
			ws.handleBrokerMessage(msg)
		}
	}
}

// HandleConnection upgrades an authenticated request to a WebSocket. The
// channel-token middleware has already put the user id on the context.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusForbidden, models.Fail(403, "connection refused", "unauthorized"))
		return
	}
	userID := userIDValue.(uuid.UUID)

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID.String(),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	ws.register <- client

	go ws.readPump(client)
	go ws.writePump(client)
}

// handleBrokerMessage routes a dispatched event to the owning user's clients.
func (ws *WebSocketService) handleBrokerMessage(msg broker.Message) {
	var eventData map[string]interface{}
	if err := json.Unmarshal(msg.Data, &eventData); err != nil {
		logger.Log.Warn("failed to parse broker message", zap.Error(err))
		return
	}

	userID, _ := eventData["user_id"].(string)
	if userID == "" {
		return
	}

	eventType, _ := eventData["type"].(string)
	entity, _ := eventData["entity"].(string)

	serverMsg := models.NewStandardMessage(models.EventMessage, eventType, eventData)
	if id, ok := eventData["event_id"].(string); ok {
		serverMsg.WithEntity(entity, id)
	}

	jsonData, err := json.Marshal(serverMsg)
	if err != nil {
		logger.Log.Error("failed to serialize server message", zap.Error(err))
		return
	}

	ws.BroadcastToUser(userID, jsonData)
}

// BroadcastToUser sends a message to every connected client of one user.
func (ws *WebSocketService) BroadcastToUser(userID string, message []byte) {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()

	for id, client := range ws.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(ws.clients, id)
		}
	}
}

func (ws *WebSocketService) readPump(client *Client) {
	defer func() {
		ws.unregister <- client
		client.Conn.Close()
	}()

	for {
		// Inbound frames are drained and ignored; the channel is push-only.
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (ws *WebSocketService) writePump(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

var WebSocketServiceInstance WebSocketServiceInterface
