package court

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context) ([]*Court, error)
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id string) error

	// UpsertWindow replaces the maintenance window with matching ID if
	// present, otherwise appends a new one.
	UpsertWindow(ctx context.Context, w *MaintenanceWindow) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// windowsSubquery aggregates a court's maintenance windows into a JSON
// array so a single scan returns the whole aggregate.
const windowsSubquery = `
	COALESCE(
		(
			SELECT json_agg(json_build_object(
				'id', mw.id,
				'court_id', mw.court_id,
				'start_time', mw.start_time,
				'end_time', mw.end_time,
				'description', mw.description,
				'status', mw.status
			) ORDER BY mw.start_time)
			FROM public.maintenance_windows mw
			WHERE mw.court_id = c.id
		),
		'[]'::json
	)
`

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	const query = `
		INSERT INTO public.courts (name, type, price_per_hour, is_available, description, images, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	images := c.Images
	if images == nil {
		images = []string{}
	}
	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Type, c.PricePerHour, c.IsAvailable, c.Description, images, amenities,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query := `
		SELECT c.id, c.name, c.type, c.price_per_hour, c.is_available,
		       c.description, c.images, c.amenities, c.created_at, c.updated_at,
		       ` + windowsSubquery + ` AS maintenance
		FROM public.courts c
		WHERE c.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)

	c, err := scanCourt(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Court, error) {
	query := `
		SELECT c.id, c.name, c.type, c.price_per_hour, c.is_available,
		       c.description, c.images, c.amenities, c.created_at, c.updated_at,
		       ` + windowsSubquery + ` AS maintenance
		FROM public.courts c
		ORDER BY c.created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	for rows.Next() {
		c, err := scanCourt(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, c)
	}

	return courts, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	const query = `
		UPDATE public.courts
		SET name = $1, type = $2, price_per_hour = $3, is_available = $4,
		    description = $5, images = $6, amenities = $7, updated_at = now()
		WHERE id = $8
	`

	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.Type, c.PricePerHour, c.IsAvailable, c.Description, c.Images, c.Amenities, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.courts WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpsertWindow(ctx context.Context, w *MaintenanceWindow) error {
	if w.ID == "" {
		const insert = `
			INSERT INTO public.maintenance_windows (court_id, start_time, end_time, description, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		if err := r.pool.QueryRow(ctx, insert,
			w.CourtID, w.StartTime, w.EndTime, w.Description, w.Status,
		).Scan(&w.ID); err != nil {
			return fmt.Errorf("insert maintenance window failed: %w", err)
		}
		return nil
	}

	const upsert = `
		INSERT INTO public.maintenance_windows (id, court_id, start_time, end_time, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    description = EXCLUDED.description,
		    status = EXCLUDED.status
	`
	if _, err := r.pool.Exec(ctx, upsert,
		w.ID, w.CourtID, w.StartTime, w.EndTime, w.Description, w.Status,
	); err != nil {
		return fmt.Errorf("upsert maintenance window failed: %w", err)
	}
	return nil
}

// scanCourt scans one court row including the aggregated maintenance JSON.
func scanCourt(scan func(dest ...any) error) (*Court, error) {
	var c Court
	var windowsJSON []byte

	if err := scan(
		&c.ID, &c.Name, &c.Type, &c.PricePerHour, &c.IsAvailable,
		&c.Description, &c.Images, &c.Amenities, &c.CreatedAt, &c.UpdatedAt,
		&windowsJSON,
	); err != nil {
		return nil, err
	}

	if len(windowsJSON) > 0 {
		if err := json.Unmarshal(windowsJSON, &c.MaintenanceSchedule); err != nil {
			log.Printf("warning: failed to unmarshal maintenance windows for court %s: %v", c.ID, err)
		}
	}

	return &c, nil
}
