package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"callsheet/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastsWorkspaceUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.NotifyWorkspace(models.Snapshot{
		FileName: "leads.xlsx",
		Contacts: []models.Contact{
			{ID: "a", Name: "Alice", Phone: "1", Status: models.StatusCompleted},
			{ID: "b", Name: "Bob", Phone: "2", Status: models.StatusPending},
		},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string          `json:"type"`
		Data WorkspaceUpdate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, EventWorkspaceUpdate, event.Type)
	assert.Equal(t, "leads.xlsx", event.Data.FileName)
	assert.Len(t, event.Data.Contacts, 2)
	assert.Equal(t, models.StatusCounts{Total: 2, Pending: 1, Completed: 1}, event.Data.Counts)
}

func TestHub_BroadcastWithoutRunnerDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.NotifyWorkspace(models.Snapshot{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked")
	}
}

func TestHub_ConnectionsAfterShutdownAreClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
	assert.Zero(t, hub.ClientCount())

	// The client closing its side must not wedge the read pump.
	require.NoError(t, first.Close())

	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer late.Close()

	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "late connection was left open")
	}
}
