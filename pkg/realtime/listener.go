package realtime

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ListenConn is the slice of a pgx connection the manager needs: issue
// LISTEN and block for notifications. *pgx.Conn satisfies it.
type ListenConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// ConnSource opens dedicated listen connections. Every subscription gets
// its own connection; the CRUD pool is never borrowed for listening.
type ConnSource interface {
	Connect(ctx context.Context) (ListenConn, error)
}

type pgxConnSource struct {
	connString string
}

// NewConnSource returns a ConnSource dialing the given connection string.
func NewConnSource(connString string) ConnSource {
	return &pgxConnSource{connString: connString}
}

func (s *pgxConnSource) Connect(ctx context.Context) (ListenConn, error) {
	return pgx.Connect(ctx, s.connString)
}
