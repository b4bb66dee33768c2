// player/store/sqlite_store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ftotnem/player-roster/shared/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS players (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT    NOT NULL,
	title            TEXT    NOT NULL,
	race             TEXT    NOT NULL DEFAULT '',
	profession       TEXT    NOT NULL DEFAULT '',
	birthday         INTEGER NOT NULL,
	banned           INTEGER NOT NULL DEFAULT 0,
	experience       INTEGER NOT NULL,
	level            INTEGER NOT NULL,
	until_next_level INTEGER NOT NULL
)`

const playerColumns = `id, name, title, race, profession, birthday, banned, experience, level, until_next_level`

// SQLitePlayerStore persists players in a SQLite database file.
type SQLitePlayerStore struct {
	db *sql.DB
}

// NewSQLitePlayerStore opens (creating if needed) the database at path.
// Use ":memory:" for a throwaway database.
func NewSQLitePlayerStore(ctx context.Context, path string) (*SQLitePlayerStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// One connection keeps writes serialised and lets ":memory:" databases work.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create players table: %w", err)
	}
	return &SQLitePlayerStore{db: db}, nil
}

var _ PlayerStore = (*SQLitePlayerStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (models.Player, error) {
	var (
		p          models.Player
		race, prof string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Title, &race, &prof, &p.Birthday, &p.Banned, &p.Experience, &p.Level, &p.UntilNextLevel)
	p.Race = models.Race(race)
	p.Profession = models.Profession(prof)
	return p, err
}

// FindAll returns every row ordered by id.
func (ss *SQLitePlayerStore) FindAll(ctx context.Context) ([]models.Player, error) {
	rows, err := ss.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

// FindByID retrieves a player by id.
func (ss *SQLitePlayerStore) FindByID(ctx context.Context, id int64) (*models.Player, error) {
	row := ss.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return &p, nil
}

// Save inserts a new row when p.ID is zero and upserts otherwise.
func (ss *SQLitePlayerStore) Save(ctx context.Context, p *models.Player) (*models.Player, error) {
	if p.ID == 0 {
		res, err := ss.db.ExecContext(ctx,
			`INSERT INTO players (name, title, race, profession, birthday, banned, experience, level, until_next_level)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Title, string(p.Race), string(p.Profession), p.Birthday, p.Banned, p.Experience, p.Level, p.UntilNextLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to insert player: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted player id: %w", err)
		}
		p.ID = id
	} else {
		_, err := ss.db.ExecContext(ctx,
			`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				name = excluded.name, title = excluded.title, race = excluded.race,
				profession = excluded.profession, birthday = excluded.birthday, banned = excluded.banned,
				experience = excluded.experience, level = excluded.level, until_next_level = excluded.until_next_level`,
			p.ID, p.Name, p.Title, string(p.Race), string(p.Profession), p.Birthday, p.Banned, p.Experience, p.Level, p.UntilNextLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to save player %d: %w", p.ID, err)
		}
	}
	saved := *p
	return &saved, nil
}

// Delete removes the row with the given id.
func (ss *SQLitePlayerStore) Delete(ctx context.Context, id int64) error {
	res, err := ss.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deleted rows for player %d: %w", id, err)
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Close closes the database.
func (ss *SQLitePlayerStore) Close() error {
	return ss.db.Close()
}
