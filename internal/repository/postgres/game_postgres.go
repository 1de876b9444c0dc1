package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

const gameColumns = `id, name, price, status, rating, genre, platform,
	purchase_date, start_date, end_date, baseline_hours, created_at, updated_at`

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func scanGame(row pgx.Row) (model.Game, error) {
	var g model.Game
	err := row.Scan(&g.ID, &g.Name, &g.Price, &g.Status, &g.Rating, &g.Genre, &g.Platform,
		&g.PurchaseDate, &g.StartDate, &g.EndDate, &g.BaselineHours, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (name, price, status, rating, genre, platform,
			purchase_date, start_date, end_date, baseline_hours)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+gameColumns,
		g.Name, g.Price, g.Status, g.Rating, g.Genre, g.Platform,
		g.PurchaseDate, g.StartDate, g.EndDate, g.BaselineHours,
	)
	out, err := scanGame(row)
	if err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanGame(exec.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) Update(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games SET
			name = $2, price = $3, status = $4, rating = $5, genre = $6,
			platform = $7, purchase_date = $8, start_date = $9, end_date = $10,
			baseline_hours = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+gameColumns,
		g.ID, g.Name, g.Price, g.Status, g.Rating, g.Genre, g.Platform,
		g.PurchaseDate, g.StartDate, g.EndDate, g.BaselineHours,
	)
	out, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gameRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Game], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Game]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)

	rows, err := exec.Query(ctx,
		`SELECT `+gameColumns+`, COUNT(*) OVER() AS total
		 FROM games ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Game]{Items: make([]model.Game, 0, limit)}
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, &g.Status, &g.Rating, &g.Genre, &g.Platform,
			&g.PurchaseDate, &g.StartDate, &g.EndDate, &g.BaselineHours, &g.CreatedAt, &g.UpdatedAt,
			&res.Total); err != nil {
			return repository.PageResult[model.Game]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, g)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
