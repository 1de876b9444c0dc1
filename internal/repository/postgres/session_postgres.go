package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

const sessionColumns = `id, game_id, session_date, hours, note, created_at`

type sessionRepository struct{ pool *pgxpool.Pool }

func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, s model.PlaySession) (model.PlaySession, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlaySession{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO play_sessions (game_id, session_date, hours, note)
		 VALUES ($1,$2,$3,$4)
		 RETURNING `+sessionColumns,
		s.GameID, s.Date, s.Hours, s.Note,
	)
	var out model.PlaySession
	if err := row.Scan(&out.ID, &out.GameID, &out.Date, &out.Hours, &out.Note, &out.CreatedAt); err != nil {
		return model.PlaySession{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM play_sessions WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) ListByGame(ctx context.Context, gameID int64) ([]model.PlaySession, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+sessionColumns+` FROM play_sessions
		 WHERE game_id = $1 ORDER BY session_date, id`, gameID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.PlaySession, 0, 16)
	for rows.Next() {
		var s model.PlaySession
		if err := rows.Scan(&s.ID, &s.GameID, &s.Date, &s.Hours, &s.Note, &s.CreatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.SessionRepository = (*sessionRepository)(nil)

type libraryRepository struct{ pool *pgxpool.Pool }

// NewLibraryRepository builds the snapshot reader the analytics engine
// consumes.
func NewLibraryRepository(pool *pgxpool.Pool) repository.LibraryRepository {
	return &libraryRepository{pool: pool}
}

// Snapshot loads every game with its sessions attached, in stable order, and
// a revision fingerprint derived from row counts and the latest write. The
// fingerprint changes whenever any row does, which is what the derived-result
// cache keys on.
func (r *libraryRepository) Snapshot(ctx context.Context) ([]model.Game, string, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, "", err
	}
	exec := getQ(ctx, r.pool)

	rows, err := exec.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, "", repository.MapPgError(err)
	}
	games := make([]model.Game, 0, 64)
	index := make(map[int64]int)
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, &g.Status, &g.Rating, &g.Genre, &g.Platform,
			&g.PurchaseDate, &g.StartDate, &g.EndDate, &g.BaselineHours, &g.CreatedAt, &g.UpdatedAt); err != nil {
			rows.Close()
			return nil, "", repository.MapPgError(err)
		}
		index[g.ID] = len(games)
		games = append(games, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, "", repository.MapPgError(err)
	}

	srows, err := exec.Query(ctx,
		`SELECT `+sessionColumns+` FROM play_sessions ORDER BY game_id, session_date, id`)
	if err != nil {
		return nil, "", repository.MapPgError(err)
	}
	defer srows.Close()
	for srows.Next() {
		var s model.PlaySession
		if err := srows.Scan(&s.ID, &s.GameID, &s.Date, &s.Hours, &s.Note, &s.CreatedAt); err != nil {
			return nil, "", repository.MapPgError(err)
		}
		if i, ok := index[s.GameID]; ok {
			games[i].Sessions = append(games[i].Sessions, s)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, "", repository.MapPgError(err)
	}

	var revision string
	row := exec.QueryRow(ctx,
		`SELECT COALESCE(MAX(GREATEST(g.updated_at, s.created_at)), 'epoch')::text
			|| ':' || COUNT(DISTINCT g.id) || ':' || COUNT(s.id)
		 FROM games g LEFT JOIN play_sessions s ON s.game_id = g.id`)
	if err := row.Scan(&revision); err != nil {
		return nil, "", repository.MapPgError(err)
	}
	return games, revision, nil
}

var _ repository.LibraryRepository = (*libraryRepository)(nil)
