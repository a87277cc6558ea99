// Package store keeps the high score and the finished games in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"blockdrop/store/migrations"

	_ "modernc.org/sqlite"
)

// Game is a finished game as recorded by Submit.
type Game struct {
	ID       string
	Score    int64
	PlayedAt time.Time
}

// Store persists scores in SQLite. It is safe for concurrent use.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite database at path, creating it when missing, and
// applies the embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// HighScore returns the best score recorded, zero when there is none.
func (s *Store) HighScore(ctx context.Context) (int64, error) {
	best, err := s.Best(ctx)
	if err != nil {
		return 0, err
	}
	return best.Score, nil
}

// Best returns the game holding the high score. The zero Game is returned
// when no score was recorded yet.
func (s *Store) Best(ctx context.Context) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	var (
		g         Game
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT score, game_id, updated_at FROM high_score WHERE id = 1`,
	).Scan(&g.Score, &g.ID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, nil
	}
	if err != nil {
		return Game{}, fmt.Errorf("get high score: %w", err)
	}
	g.PlayedAt = fromMillis(updatedAt)
	return g, nil
}

// Submit records a finished game and reports whether its score beat the
// high score. A game submitted twice keeps its best score.
func (s *Store) Submit(ctx context.Context, gameID string, score int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return false, fmt.Errorf("game id is required")
	}
	if score < 0 {
		return false, fmt.Errorf("score must not be negative, got %d", score)
	}
	now := toMillis(s.now())

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin submit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (game_id, score, played_at) VALUES (?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   score = excluded.score,
		   played_at = excluded.played_at
		 WHERE excluded.score > games.score`,
		gameID, score, now,
	); err != nil {
		return false, fmt.Errorf("record game: %w", err)
	}

	var best bool
	if score > 0 {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO high_score (id, score, game_id, updated_at) VALUES (1, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   score = excluded.score,
			   game_id = excluded.game_id,
			   updated_at = excluded.updated_at
			 WHERE excluded.score > high_score.score`,
			score, gameID, now,
		)
		if err != nil {
			return false, fmt.Errorf("update high score: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("update high score: %w", err)
		}
		best = n > 0
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit submit: %w", err)
	}
	return best, nil
}

// Top returns up to limit games ordered by score, older games first on ties.
func (s *Store) Top(ctx context.Context, limit int) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, score, played_at FROM games
		 ORDER BY score DESC, played_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var (
			g        Game
			playedAt int64
		)
		if err := rows.Scan(&g.ID, &g.Score, &playedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.PlayedAt = fromMillis(playedAt)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}
