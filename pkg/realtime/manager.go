package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Unsubscribe tears down one subscription's channel. Safe to call more
// than once; only the first call has effect.
type Unsubscribe func()

// notifyPayload is what the row triggers publish on <table>_changes.
type notifyPayload struct {
	Action string `json:"action"`
	Table  string `json:"table"`
	New    Row    `json:"new"`
	Old    Row    `json:"old"`
}

type subscription struct {
	id     uuid.UUID
	key    string
	conn   ListenConn
	cancel context.CancelFunc
	once   sync.Once
}

// Manager wraps the store's LISTEN/NOTIFY change feed. Each Subscribe call
// opens a dedicated connection; repeated subscriptions to the same
// (table, filter) key open independent redundant channels, each caller
// owning its own teardown. The manager keeps a registry of open
// subscriptions so UnsubscribeAll can drain everything at shutdown.
//
// No replay, dedup, or reconnect is performed. A dropped connection stops
// that subscription's notifications until a consumer subscribes again.
type Manager struct {
	source ConnSource
	log    *zap.Logger

	mu   sync.Mutex
	subs map[uuid.UUID]*subscription
}

// NewManager creates a subscription manager. A nil source puts the manager
// in degraded mode: Subscribe hands back a no-op unsubscribe and the
// callback is never invoked.
func NewManager(source ConnSource, log *zap.Logger) *Manager {
	return &Manager{
		source: source,
		log:    log.With(zap.String("component", "realtime")),
		subs:   make(map[uuid.UUID]*subscription),
	}
}

// Subscribe opens a change-feed channel for one table, optionally
// restricted by an ownership filter, and invokes fn for every matching
// notification. The returned Unsubscribe closes the channel; callers must
// invoke it themselves, UnsubscribeAll is for process shutdown only.
func (m *Manager) Subscribe(table string, filter *Filter, fn EventFunc) (Unsubscribe, error) {
	if m.source == nil {
		return func() {}, nil
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer connectCancel()

	conn, err := m.source.Connect(connectCtx)
	if err != nil {
		m.log.Error("Failed to open change feed connection",
			zap.Error(err),
			zap.String("table", table),
		)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	channel := table + "_changes"
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		cancel()
		conn.Close(context.Background())
		m.log.Error("Failed to listen on change feed channel",
			zap.Error(err),
			zap.String("channel", channel),
		)
		return nil, err
	}

	sub := &subscription{
		id:     uuid.New(),
		key:    table + "|" + filter.String(),
		conn:   conn,
		cancel: cancel,
	}

	m.mu.Lock()
	m.subs[sub.id] = sub
	m.mu.Unlock()

	m.log.Info("Change feed subscription opened",
		zap.String("subscription_id", sub.id.String()),
		zap.String("key", sub.key),
	)

	go m.pump(ctx, sub, table, filter, fn)

	return func() { m.teardown(sub) }, nil
}

// UnsubscribeAll tears down every open channel and clears the registry.
// Intended for process shutdown, not per-consumer cleanup: channels of
// unrelated consumers are closed too.
func (m *Manager) UnsubscribeAll() {
	m.mu.Lock()
	subs := make([]*subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		m.teardown(sub)
	}

	m.log.Info("All change feed subscriptions closed", zap.Int("count", len(subs)))
}

// Open reports how many subscriptions are currently registered.
func (m *Manager) Open() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *Manager) teardown(sub *subscription) {
	sub.once.Do(func() {
		sub.cancel()

		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := sub.conn.Close(closeCtx); err != nil {
			m.log.Warn("Failed to close change feed connection",
				zap.Error(err),
				zap.String("subscription_id", sub.id.String()),
			)
		}

		m.mu.Lock()
		delete(m.subs, sub.id)
		m.mu.Unlock()

		m.log.Info("Change feed subscription closed",
			zap.String("subscription_id", sub.id.String()),
			zap.String("key", sub.key),
		)
	})
}

// pump blocks on the connection and forwards notifications until the
// subscription is torn down or the connection drops.
func (m *Manager) pump(ctx context.Context, sub *subscription, table string, filter *Filter, fn EventFunc) {
	for {
		notification, err := sub.conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.log.Warn("Change feed connection lost",
				zap.Error(err),
				zap.String("subscription_id", sub.id.String()),
				zap.String("key", sub.key),
			)
			m.teardown(sub)
			return
		}

		event, ok := m.decode(table, notification.Payload)
		if !ok {
			continue
		}

		if !filter.Matches(event) {
			continue
		}

		fn(event)
	}
}

// decode normalizes a trigger payload into an Event. Malformed payloads
// are logged and dropped.
func (m *Manager) decode(table, payload string) (Event, bool) {
	var p notifyPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		m.log.Warn("Malformed change feed payload",
			zap.Error(err),
			zap.String("table", table),
		)
		return Event{}, false
	}

	var kind EventKind
	switch p.Action {
	case "INSERT":
		kind = EventInsert
	case "UPDATE":
		kind = EventUpdate
	case "DELETE":
		kind = EventDelete
	default:
		m.log.Warn("Unknown change feed action",
			zap.String("action", p.Action),
			zap.String("table", table),
		)
		return Event{}, false
	}

	// At least one row image must be present
	if p.New == nil && p.Old == nil {
		m.log.Warn("Change feed payload without row image",
			zap.String("action", p.Action),
			zap.String("table", table),
		)
		return Event{}, false
	}

	eventTable := p.Table
	if eventTable == "" {
		eventTable = table
	}

	return Event{
		Kind:  kind,
		Table: eventTable,
		New:   p.New,
		Old:   p.Old,
	}, true
}
