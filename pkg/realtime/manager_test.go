package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn feeds notifications to WaitForNotification through a channel.
type fakeConn struct {
	mu       sync.Mutex
	listens  []string
	closed   bool
	execErr  error
	notifies chan *pgconn.Notification
}

func newFakeConn() *fakeConn {
	return &fakeConn{notifies: make(chan *pgconn.Notification, 16)}
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	c.listens = append(c.listens, sql)
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case n, ok := <-c.notifies:
		if !ok {
			return nil, errors.New("connection closed")
		}
		return n, nil
	}
}

func (c *fakeConn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) notify(payload string) {
	c.notifies <- &pgconn.Notification{Payload: payload}
}

// fakeSource hands out one fake connection per Connect call.
type fakeSource struct {
	mu    sync.Mutex
	conns []*fakeConn
	err   error
}

func (s *fakeSource) Connect(ctx context.Context) (ListenConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	conn := newFakeConn()
	s.conns = append(s.conns, conn)
	return conn, nil
}

func collectEvents() (EventFunc, func() []Event) {
	var mu sync.Mutex
	var events []Event
	fn := func(event Event) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	}
	snapshot := func() []Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]Event(nil), events...)
	}
	return fn, snapshot
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSubscribeWithoutSourceIsNoOp(t *testing.T) {
	manager := NewManager(nil, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)

	require.NoError(t, err)
	require.NotNil(t, unsubscribe)
	assert.Equal(t, 0, manager.Open())

	// Safe to call, nothing to tear down
	unsubscribe()
	unsubscribe()
	assert.Empty(t, events())
}

func TestSubscribeDeliversMatchingEvents(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)
	require.NoError(t, err)
	defer unsubscribe()

	require.Len(t, source.conns, 1)
	conn := source.conns[0]
	assert.Equal(t, []string{`LISTEN "products_changes"`}, conn.listens)

	conn.notify(`{"action":"INSERT","table":"products","new":{"id":"p1","name":"Copper Wire"}}`)

	waitFor(t, func() bool { return len(events()) == 1 })
	event := events()[0]
	assert.Equal(t, EventInsert, event.Kind)
	assert.Equal(t, "products", event.Table)
	assert.Equal(t, "p1", event.New["id"])
}

func TestSubscribeFilterScopesEvents(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("orders", &Filter{Column: "user_id", Value: "u1"}, fn)
	require.NoError(t, err)
	defer unsubscribe()

	conn := source.conns[0]
	conn.notify(`{"action":"INSERT","table":"orders","new":{"id":"o1","user_id":"u2"}}`)
	conn.notify(`{"action":"INSERT","table":"orders","new":{"id":"o2","user_id":"u1"}}`)
	// Delete carries only the old image, filter falls back to it
	conn.notify(`{"action":"DELETE","table":"orders","old":{"id":"o3","user_id":"u1"}}`)

	waitFor(t, func() bool { return len(events()) == 2 })
	assert.Equal(t, "o2", events()[0].New["id"])
	assert.Equal(t, EventDelete, events()[1].Kind)
	assert.Equal(t, "o3", events()[1].Old["id"])
}

func TestSubscribeDropsMalformedPayloads(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)
	require.NoError(t, err)
	defer unsubscribe()

	conn := source.conns[0]
	conn.notify(`not json`)
	conn.notify(`{"action":"TRUNCATE","table":"products","new":{"id":"p1"}}`)
	conn.notify(`{"action":"UPDATE","table":"products"}`)
	conn.notify(`{"action":"UPDATE","table":"products","new":{"id":"p1"},"old":{"id":"p1"}}`)

	waitFor(t, func() bool { return len(events()) == 1 })
	assert.Equal(t, EventUpdate, events()[0].Kind)
}

func TestInsertThenDeleteArriveInOrderWithoutReplay(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)
	require.NoError(t, err)
	defer unsubscribe()

	conn := source.conns[0]
	conn.notify(`{"action":"INSERT","table":"products","new":{"id":"p1"}}`)
	conn.notify(`{"action":"DELETE","table":"products","old":{"id":"p1"}}`)

	waitFor(t, func() bool { return len(events()) == 2 })
	assert.Equal(t, EventInsert, events()[0].Kind)
	assert.Equal(t, EventDelete, events()[1].Kind)

	// The manager keeps no row state: nothing more arrives
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, events(), 2)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, _ := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, manager.Open())

	unsubscribe()
	waitFor(t, func() bool { return manager.Open() == 0 })
	assert.True(t, source.conns[0].isClosed())

	// Second call has no effect
	unsubscribe()
	assert.Equal(t, 0, manager.Open())
}

func TestSubscribeThenUnsubscribeLeavesNoTrace(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, events := collectEvents()
	unsubscribe, err := manager.Subscribe("inquiries", nil, fn)
	require.NoError(t, err)

	unsubscribe()
	waitFor(t, func() bool { return manager.Open() == 0 })

	// A late notification on the torn-down connection reaches nobody
	select {
	case source.conns[0].notifies <- &pgconn.Notification{Payload: `{"action":"INSERT","new":{"id":"i1"}}`}:
	default:
	}
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, events())
}

func TestRedundantSubscriptionsAreIndependent(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fnA, eventsA := collectEvents()
	fnB, eventsB := collectEvents()

	unsubA, err := manager.Subscribe("products", nil, fnA)
	require.NoError(t, err)
	unsubB, err := manager.Subscribe("products", nil, fnB)
	require.NoError(t, err)

	require.Len(t, source.conns, 2)
	assert.Equal(t, 2, manager.Open())

	// Tearing down one channel leaves the other delivering
	unsubA()
	waitFor(t, func() bool { return manager.Open() == 1 })

	source.conns[1].notify(`{"action":"INSERT","table":"products","new":{"id":"p1"}}`)
	waitFor(t, func() bool { return len(eventsB()) == 1 })
	assert.Empty(t, eventsA())

	unsubB()
}

func TestSubscribeConnectFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("dial refused")}
	manager := NewManager(source, zap.NewNop())

	fn, _ := collectEvents()
	unsubscribe, err := manager.Subscribe("products", nil, fn)

	assert.Error(t, err)
	assert.Nil(t, unsubscribe)
	assert.Equal(t, 0, manager.Open())
}

func TestConnectionLossTearsDownSubscription(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, _ := collectEvents()
	_, err := manager.Subscribe("orders", nil, fn)
	require.NoError(t, err)

	close(source.conns[0].notifies)

	// No reconnect: the subscription removes itself
	waitFor(t, func() bool { return manager.Open() == 0 })
	assert.True(t, source.conns[0].isClosed())
}

func TestUnsubscribeAll(t *testing.T) {
	source := &fakeSource{}
	manager := NewManager(source, zap.NewNop())

	fn, _ := collectEvents()
	for i := 0; i < 3; i++ {
		_, err := manager.Subscribe("products", nil, fn)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, manager.Open())

	manager.UnsubscribeAll()
	assert.Equal(t, 0, manager.Open())
	for _, conn := range source.conns {
		assert.True(t, conn.isClosed())
	}
}
