package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// sqliteLocationRepo, LocationRepository interface'inin SQLite implementasyonu.
type sqliteLocationRepo struct {
	db *sql.DB
}

// NewSQLiteLocationRepo, constructor — interface döner.
func NewSQLiteLocationRepo(db *sql.DB) LocationRepository {
	return &sqliteLocationRepo{db: db}
}

func (r *sqliteLocationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, name, lat, lng)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		location.Name, location.Lat, location.Lng,
	).Scan(&location.ID, &location.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *sqliteLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT id, name, lat, lng, created_at FROM locations WHERE id = ?`

	location := &models.Location{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&location.ID, &location.Name, &location.Lat, &location.Lng, &location.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}

	return location, nil
}
