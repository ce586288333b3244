package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-location-share/internal/model"
)

const locationColumns = `id, x, y, city, country, title, description, image_url, created_at, updated_at`

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Create(ctx context.Context, loc model.Location) (model.Location, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO locations (id, x, y, city, country, title, description, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		 RETURNING `+locationColumns,
		loc.ID, loc.X, loc.Y, loc.City, loc.Country, loc.Title, loc.Description, loc.ImageURL)

	created, err := scanLocation(row)
	if err != nil {
		return model.Location{}, fmt.Errorf("create location: %w", err)
	}
	return created, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]model.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Location, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)

	loc, err := scanLocation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Location{}, model.ErrLocationNotFound
	}
	if err != nil {
		return model.Location{}, fmt.Errorf("find location: %w", err)
	}
	return loc, nil
}

// Update applies a partial update: nil fields keep their stored value.
func (r *LocationRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateLocationRequest) (model.Location, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE locations
		 SET x = COALESCE($1, x),
		     y = COALESCE($2, y),
		     city = COALESCE($3, city),
		     country = COALESCE($4, country),
		     title = COALESCE($5, title),
		     description = COALESCE($6, description),
		     image_url = COALESCE($7, image_url),
		     updated_at = now()
		 WHERE id = $8
		 RETURNING `+locationColumns,
		req.X, req.Y, req.City, req.Country, req.Title, req.Description, req.ImageURL, id)

	loc, err := scanLocation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Location{}, model.ErrLocationNotFound
	}
	if err != nil {
		return model.Location{}, fmt.Errorf("update location: %w", err)
	}
	return loc, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLocationNotFound
	}
	return nil
}

func scanLocation(row pgx.Row) (model.Location, error) {
	var loc model.Location
	err := row.Scan(&loc.ID, &loc.X, &loc.Y, &loc.City, &loc.Country, &loc.Title,
		&loc.Description, &loc.ImageURL, &loc.CreatedAt, &loc.UpdatedAt)
	return loc, err
}
