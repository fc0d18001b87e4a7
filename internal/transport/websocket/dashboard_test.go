package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barbershop/internal/domain"
	"barbershop/internal/metrics"
)

type stubTokens map[string]domain.UserRole

func (s stubTokens) ParseToken(_ context.Context, token string) (int64, domain.UserRole, error) {
	role, ok := s[token]
	if !ok {
		return 0, "", errors.New("недействительный токен")
	}
	return 7, role, nil
}

func startHub(t *testing.T) (*DashboardHub, *metrics.Metrics, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	hub := NewDashboardHub(stubTokens{"admin-token": domain.UserRoleAdmin, "odd-token": "guest"}, m, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/dashboard", hub.HandleWebSocket)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return hub, m, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/dashboard"
}

func TestDashboardHub_BroadcastsEvents(t *testing.T) {
	hub, m, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=admin-token", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DashboardClients))

	hub.Publish(domain.Event{Type: domain.EventAppointmentCreated, Payload: map[string]int64{"id": 42}})

	var got struct {
		Type    string           `json:"type"`
		Payload map[string]int64 `json:"payload"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "appointment.created", got.Type)
	assert.Equal(t, int64(42), got.Payload["id"])

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestDashboardHub_RejectsBadTokens(t *testing.T) {
	_, _, url := startHub(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"unknown token", "?token=nope", http.StatusUnauthorized},
		{"role without dashboard access", "?token=odd-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(url+tt.query, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDashboardHub_PublishDoesNotBlockWhenQueueIsFull(t *testing.T) {
	hub := NewDashboardHub(stubTokens{}, nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventQueueSize*2; i++ {
			hub.Publish(domain.Event{Type: domain.EventBlockedSlotsChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался при переполненной очереди")
	}
}
