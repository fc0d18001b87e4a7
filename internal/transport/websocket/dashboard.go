package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"barbershop/internal/domain"
	"barbershop/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBufferSize = 32
	eventQueueSize = 64
)

// TokenParser validates an access token and returns its owner.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

// Client is one connected dashboard tab.
type Client struct {
	UserID int64
	Role   domain.UserRole
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *DashboardHub
}

// DashboardHub fans appointment and schedule events out to every connected admin.
type DashboardHub struct {
	clients    map[*Client]struct{}
	events     chan domain.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	tokens   TokenParser
	metrics  *metrics.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mutex sync.RWMutex
}

func NewDashboardHub(tokens TokenParser, m *metrics.Metrics, logger *zap.Logger) *DashboardHub {
	return &DashboardHub{
		clients:    make(map[*Client]struct{}),
		events:     make(chan domain.Event, eventQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		tokens:     tokens,
		metrics:    m,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *DashboardHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.setGauge()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			h.mutex.Unlock()
			h.setGauge()
			h.logger.Info("панель подключена", zap.Int64("userId", client.UserID))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.setGauge()
			h.logger.Info("панель отключена", zap.Int64("userId", client.UserID))

		case event := <-h.events:
			h.broadcast(event)
		}
	}
}

// Publish queues an event for broadcast. When the queue is full the event is dropped.
func (h *DashboardHub) Publish(event domain.Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn("очередь событий переполнена, событие пропущено", zap.String("type", string(event.Type)))
	}
}

func (h *DashboardHub) broadcast(event domain.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ошибка сериализации события", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// slow consumer
			delete(h.clients, client)
			close(client.Send)
			h.logger.Warn("панель не успевает получать события, соединение закрыто", zap.Int64("userId", client.UserID))
		}
	}
}

func (h *DashboardHub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *DashboardHub) setGauge() {
	if h.metrics != nil {
		h.metrics.DashboardClients.Set(float64(h.ClientCount()))
	}
}

// HandleWebSocket upgrades an admin connection authenticated by the ?token= access token.
func (h *DashboardHub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "требуется токен"})
		return
	}

	userID, role, err := h.tokens.ParseToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("недействительный токен панели", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "недействительный токен"})
		return
	}
	if !role.CanManageShop() {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "доступ запрещен"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ошибка установки websocket соединения", zap.Error(err))
		return
	}

	client := &Client{
		UserID: userID,
		Role:   role,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		Hub:    h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only drains control frames; dashboards never send events.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка websocket", zap.Int64("userId", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Error("ошибка отправки события", zap.Int64("userId", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
