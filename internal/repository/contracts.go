package repository

import (
	"context"

	"github.com/maxviazov/gamelib-analytics/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// Context is passed through so nested calls honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// A single entry point keeps transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// GameRepository declares persistence operations for library entries.
// Implementations return domain models and surface domain errors from
// errors.go rather than PG codes.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	Update(ctx context.Context, g model.Game) (model.Game, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p Page) (PageResult[model.Game], error)
}

// SessionRepository declares operations for play sessions. Sessions are
// immutable: there is no update, edits are delete + recreate.
type SessionRepository interface {
	Create(ctx context.Context, s model.PlaySession) (model.PlaySession, error)
	Delete(ctx context.Context, id int64) error
	ListByGame(ctx context.Context, gameID int64) ([]model.PlaySession, error)
}

// LibraryRepository supplies the analytics engine's sole input: the full
// library with sessions attached, plus a revision fingerprint that changes
// whenever any game or session row does. The fingerprint keys the derived-
// result cache.
type LibraryRepository interface {
	Snapshot(ctx context.Context) ([]model.Game, string, error)
}
