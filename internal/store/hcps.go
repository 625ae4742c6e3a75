package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/outfield-crm/outfield/internal/record"
)

// ListHCPs returns the full HCP directory, alphabetical by name.
func (s *Store) ListHCPs(ctx context.Context) ([]record.HCP, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, specialty, location
		FROM hcps
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query hcps: %w", err)
	}
	defer rows.Close()

	var out []record.HCP
	for rows.Next() {
		var h record.HCP
		if err := rows.Scan(&h.ID, &h.Name, &h.Specialty, &h.Location); err != nil {
			return nil, fmt.Errorf("scan hcp: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hcps: %w", err)
	}
	return out, nil
}

// SearchHCPs matches the query against name, specialty and location.
func (s *Store) SearchHCPs(ctx context.Context, query string) ([]record.HCP, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, specialty, location
		FROM hcps
		WHERE name ILIKE '%' || $1 || '%'
		   OR specialty ILIKE '%' || $1 || '%'
		   OR location ILIKE '%' || $1 || '%'
		ORDER BY name`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("search hcps: %w", err)
	}
	defer rows.Close()

	var out []record.HCP
	for rows.Next() {
		var h record.HCP
		if err := rows.Scan(&h.ID, &h.Name, &h.Specialty, &h.Location); err != nil {
			return nil, fmt.Errorf("scan hcp: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hcps: %w", err)
	}
	return out, nil
}

// CreateHCP inserts a new HCP and returns it with its assigned id.
func (s *Store) CreateHCP(ctx context.Context, in record.HCP) (record.HCP, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO hcps (id, name, specialty, location)
		VALUES ($1, $2, $3, $4)`,
		id, in.Name, in.Specialty, in.Location,
	)
	if err != nil {
		return record.HCP{}, fmt.Errorf("insert hcp: %w", err)
	}
	in.ID = id
	return in, nil
}
