package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zinets/zinets"
)

// Compile-time interface verification.
var _ zinets.CharacterService = (*CharacterService)(nil)

// recentLimit is the number of records reported by Stats.
const recentLimit = 5

const characterColumns = `id, token, pronunciation, meaning, composition, examples,
	provider, model, active, best, created_at, updated_at`

// CharacterService implements zinets.CharacterService using SQLite.
type CharacterService struct {
	db *DB
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(db *DB) *CharacterService {
	return &CharacterService{db: db}
}

// FindCharacter returns the most recently updated active record marked best.
func (s *CharacterService) FindCharacter(ctx context.Context, token string) (*zinets.Character, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE token = ? AND active = 1 AND best = 1
		ORDER BY updated_at DESC, rowid DESC
		LIMIT 1
	`, token)

	c, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, zinets.Errorf(zinets.ENOTFOUND, "character %q not cached", token)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindCharacters retrieves characters matching the filter, most recently
// updated first.
func (s *CharacterService) FindCharacters(ctx context.Context, filter zinets.CharacterFilter) ([]*zinets.Character, error) {
	var cond conditions
	cond.equal("token", filter.Token)
	cond.equal("provider", filter.Provider)
	cond.equal("model", filter.Model)
	if filter.ActiveOnly {
		cond.add("active = 1")
	}

	var query strings.Builder
	query.WriteString("SELECT " + characterColumns + " FROM characters")
	query.WriteString(cond.where())
	query.WriteString(" ORDER BY updated_at DESC, rowid DESC")
	cond.paginate(&query, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []*zinets.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}

	return characters, rows.Err()
}

// SaveCharacter inserts the record or replaces the data of the record with
// the same token, provider and model. The record becomes best only when no
// other active record for the token is best; a record keeps the best flag
// it already has.
func (s *CharacterService) SaveCharacter(ctx context.Context, c *zinets.Character) error {
	if err := c.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO characters (`+characterColumns+`)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, 1,
			NOT EXISTS (SELECT 1 FROM characters AS other WHERE other.token = ?2 AND other.active = 1 AND other.best = 1),
			?9, ?9)
		ON CONFLICT (token, provider, model) DO UPDATE SET
			pronunciation = excluded.pronunciation,
			meaning = excluded.meaning,
			composition = excluded.composition,
			examples = excluded.examples,
			active = 1,
			best = characters.best OR NOT EXISTS (
				SELECT 1 FROM characters AS other WHERE other.token = ?2 AND other.active = 1 AND other.best = 1
			),
			updated_at = excluded.updated_at
		RETURNING id, best, created_at, updated_at
	`, uuid.New().String(), c.Token, c.Pronunciation, c.Meaning, c.Composition, c.Examples,
		c.Provider, c.Model, now).Scan(&c.ID, &c.Best, &createdAt, &updatedAt)
	if err != nil {
		return err
	}

	c.Active = true
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return err
	}
	if c.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return err
	}
	return nil
}

// DeactivateCharacter marks a record inactive. When the record was best,
// the most recently updated remaining active record for the token takes
// its place.
func (s *CharacterService) DeactivateCharacter(ctx context.Context, token, provider, model string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := tx.ExecContext(ctx, `
		UPDATE characters
		SET active = 0, best = 0, updated_at = ?
		WHERE token = ? AND provider = ? AND model = ? AND active = 1
	`, now, token, provider, model)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return zinets.Errorf(zinets.ENOTFOUND, "active character %q from %s/%s not found", token, provider, model)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE characters SET best = 1
		WHERE id = (
			SELECT id FROM characters
			WHERE token = ?1 AND active = 1
			ORDER BY updated_at DESC, rowid DESC
			LIMIT 1
		)
		AND NOT EXISTS (SELECT 1 FROM characters WHERE token = ?1 AND active = 1 AND best = 1)
	`, token)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Stats summarizes the cache. Distributions and recent records cover active
// records only.
func (s *CharacterService) Stats(ctx context.Context) (*zinets.CacheStats, error) {
	stats := &zinets.CacheStats{
		ByProvider: make(map[string]int),
		ByModel:    make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(active), 0),
			COALESCE(SUM(active AND best), 0)
		FROM characters
	`).Scan(&stats.Total, &stats.Active, &stats.Best)
	if err != nil {
		return nil, err
	}

	if err := s.countBy(ctx, "provider", stats.ByProvider); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "model", stats.ByModel); err != nil {
		return nil, err
	}

	stats.Recent, err = s.FindCharacters(ctx, zinets.CharacterFilter{ActiveOnly: true, Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// countBy fills counts with the number of active records per value of column.
// column must be a trusted identifier.
func (s *CharacterService) countBy(ctx context.Context, column string, counts map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+column+", COUNT(*) FROM characters WHERE active = 1 GROUP BY "+column)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		counts[key] = n
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row scanner) (*zinets.Character, error) {
	var c zinets.Character
	var createdAt, updatedAt string

	if err := row.Scan(&c.ID, &c.Token, &c.Pronunciation, &c.Meaning, &c.Composition, &c.Examples,
		&c.Provider, &c.Model, &c.Active, &c.Best, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
