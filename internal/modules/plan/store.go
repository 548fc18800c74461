// README: Itinerary persistence backed by PostgreSQL (day blocks as jsonb).
package plan

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPlanNotFound is returned when no itinerary exists for an id.
var ErrPlanNotFound = errors.New("itinerary not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Save persists an itinerary and returns its new id.
func (s *Store) Save(ctx context.Context, it *Itinerary) (string, error) {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return "", fmt.Errorf("marshal day blocks: %w", err)
	}

	id := newID()
	_, err = s.db.Exec(ctx, `
        INSERT INTO itineraries (id, title, start_date, end_date, days, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		id, it.Title, it.StartDate, it.EndDate, days, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a saved itinerary by id.
func (s *Store) Get(ctx context.Context, id string) (*Itinerary, error) {
	row := s.db.QueryRow(ctx, `
        SELECT title, start_date, end_date, days
        FROM itineraries
        WHERE id = $1`, id,
	)

	var it Itinerary
	var days []byte
	err := row.Scan(&it.Title, &it.StartDate, &it.EndDate, &days)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(days, &it.Days); err != nil {
		return nil, fmt.Errorf("unmarshal day blocks: %w", err)
	}
	return &it, nil
}

func newID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
