package sse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/testutil"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "word_called",
			data:      `{"type":"word_called"}`,
			expected:  "event: word_called\ndata: {\"type\":\"word_called\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "update",
			data:      "a\nb",
			expected:  "event: update\ndata: a\ndata: b\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "crlf line endings",
			eventName: "test",
			data:      "line1\r\nline2\r\n",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatMessage(tt.eventName, tt.data)))
		})
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("ABCDE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p1")
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("test-event", "test data")
	assert.Equal(t, "event: test-event\ndata: test data\n\n", receive(t, client))
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("ABCDE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(hub, "p1"), NewClient(hub, "p2"), NewClient(hub, "p3")}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")
	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c))
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("ABCDE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p1")
	hub.Register(client)
	hub.Unregister(client)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("ABCDE", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "p1")
	hub.Register(client)
	hub.Close()
	hub.Close()

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
	assert.False(t, hub.Register(NewClient(hub, "p2")))
}

func TestHubManager(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	assert.Nil(t, manager.GetHub("ABCDE"))

	hub1 := manager.GetOrCreateHub("ABCDE")
	hub2 := manager.GetOrCreateHub("ABCDE")
	hub3 := manager.GetOrCreateHub("FGHIJ")

	assert.Same(t, hub1, hub2)
	assert.NotSame(t, hub1, hub3)
	assert.Same(t, hub1, manager.GetHub("ABCDE"))

	manager.RemoveHub("ABCDE")
	assert.Nil(t, manager.GetHub("ABCDE"))
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	busy := manager.GetOrCreateHub("ABCDE")
	manager.GetOrCreateHub("FGHIJ")

	busy.Register(NewClient(busy, "p1"))
	require.Eventually(t, func() bool { return busy.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.NotNil(t, manager.GetHub("ABCDE"))
	assert.Nil(t, manager.GetHub("FGHIJ"))
}

func TestBroadcasterSendsGameSnapshot(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABCDE")
	client := NewClient(hub, "p1")
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	game := &model.Game{ID: "game:ABCDE", RoomCode: "ABCDE", Status: model.GameStatusPlaying, CalledWords: []string{"apple"}}
	broadcaster.GameUpdated(model.EventWordCalled, game)

	msg := receive(t, client)
	require.True(t, strings.HasPrefix(msg, "event: word_called\ndata: "))

	var event Event
	payload := strings.TrimSuffix(strings.TrimPrefix(msg, "event: word_called\ndata: "), "\n\n")
	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	assert.Equal(t, model.EventWordCalled, event.Type)
	assert.Equal(t, []string{"apple"}, event.Game.CalledWords)
}

func TestBroadcasterIgnoresUnwatchedRoom(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.GameUpdated(model.EventWordCalled, &model.Game{RoomCode: "ZZZZZ"})
	assert.Nil(t, manager.GetHub("ZZZZZ"))
}

func TestServeSSEStreamsEvents(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	hub := manager.GetOrCreateHub("ABCDE")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, "p1", formatMessage("snapshot", "{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, len("event: snapshot\ndata: {}\n\n"))
	_, err = io.ReadFull(resp.Body, buf)
	require.NoError(t, err)
	assert.Equal(t, "event: snapshot\ndata: {}\n\n", string(buf))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("word_called", "x")

	buf = make([]byte, len("event: word_called\ndata: x\n\n"))
	_, err = io.ReadFull(resp.Body, buf)
	require.NoError(t, err)
	assert.Equal(t, "event: word_called\ndata: x\n\n", string(buf))
}
