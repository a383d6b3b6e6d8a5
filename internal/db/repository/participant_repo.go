// Package repository contains the Postgres access layer for durable
// participant records.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// dbtx is the slice of pgxpool.Pool the repository needs; narrowed so tests
// can substitute a stub.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ParticipantRepository persists participants in the primary tier.
type ParticipantRepository struct {
	db dbtx
}

// NewParticipantRepository constructs a participant repository.
func NewParticipantRepository(db dbtx) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Insert writes one participant row. Answers are stored as JSONB in the
// order they were submitted.
func (r *ParticipantRepository) Insert(ctx context.Context, p participant.Participant) error {
	answers, err := json.Marshal(p.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO participants (name, answers, completed_at) VALUES ($1, $2, $3)`,
		p.Name, answers, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// List returns all participants, newest completion first.
func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, answers, completed_at FROM participants ORDER BY completed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var list []participant.Participant
	for rows.Next() {
		var (
			p       participant.Participant
			answers []byte
			ts      time.Time
		)
		if err := rows.Scan(&p.Name, &answers, &ts); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		if err := json.Unmarshal(answers, &p.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		p.CompletedAt = ts
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return list, nil
}
