package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lotto-picker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SnapshotRepository persists the audit log of statistics refreshes.
type SnapshotRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSnapshotRepository(db *sql.DB, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: db, logger: logger}
}

func (r *SnapshotRepository) Insert(ctx context.Context, snap domain.FetchSnapshot) error {
	if snap.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate snapshot id: %w", err)
		}
		snap.ID = id
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fetch_snapshots (id, status, record_count, top_number, top_count, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, string(snap.Status), snap.RecordCount, snap.TopNumber, snap.TopCount, snap.FetchedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("id", snap.ID).Msg("failed to insert fetch snapshot")
		return fmt.Errorf("failed to insert fetch snapshot: %w", err)
	}

	r.logger.Debug().
		Str("id", snap.ID).
		Str("status", string(snap.Status)).
		Msg("fetch snapshot recorded")
	return nil
}

func (r *SnapshotRepository) Recent(ctx context.Context, limit int) ([]domain.FetchSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, status, record_count, top_number, top_count, fetched_at
		 FROM fetch_snapshots
		 ORDER BY fetched_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.FetchSnapshot
	for rows.Next() {
		var snap domain.FetchSnapshot
		var status string
		if err := rows.Scan(&snap.ID, &status, &snap.RecordCount, &snap.TopNumber, &snap.TopCount, &snap.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fetch snapshot: %w", err)
		}
		snap.Status = domain.SourceStatus(status)
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}
