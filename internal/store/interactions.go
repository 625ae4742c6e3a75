package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/outfield-crm/outfield/internal/record"
)

const interactionColumns = `
	id, hcp_name, hcp_specialty, interaction_type, location, duration_minutes,
	discussion_topics, products_discussed, samples_provided, next_steps,
	sentiment, follow_up_date, sales_rep_name, created_at, updated_at`

// CreateInteraction inserts a new interaction and returns it with its
// assigned id and timestamps.
func (s *Store) CreateInteraction(ctx context.Context, in record.Interaction) (record.Interaction, error) {
	id := uuid.New().String()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO interactions (
			id, hcp_name, hcp_specialty, interaction_type, location, duration_minutes,
			discussion_topics, products_discussed, samples_provided, next_steps,
			sentiment, follow_up_date, sales_rep_name, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		RETURNING`+interactionColumns,
		id, in.HCPName, in.HCPSpecialty, in.InteractionType, in.Location, in.DurationMinutes,
		in.DiscussionTopics, in.ProductsDiscussed, in.SamplesProvided, in.NextSteps,
		in.Sentiment, in.FollowUpDate, in.SalesRepName,
	)
	out, err := scanInteraction(row)
	if err != nil {
		return record.Interaction{}, fmt.Errorf("insert interaction: %w", err)
	}
	return out, nil
}

// ListInteractions returns all active interactions, oldest first.
func (s *Store) ListInteractions(ctx context.Context) ([]record.Interaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+interactionColumns+`
		FROM interactions
		WHERE is_active
		ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []record.Interaction
	for rows.Next() {
		it, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

// GetInteraction returns one active interaction by id.
func (s *Store) GetInteraction(ctx context.Context, id string) (record.Interaction, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT`+interactionColumns+`
		FROM interactions
		WHERE id = $1 AND is_active`,
		id,
	)
	out, err := scanInteraction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return record.Interaction{}, ErrNotFound
	}
	if err != nil {
		return record.Interaction{}, fmt.Errorf("get interaction: %w", err)
	}
	return out, nil
}

// UpdateInteraction applies the non-nil fields of upd and returns the full
// updated record.
func (s *Store) UpdateInteraction(ctx context.Context, id string, upd record.InteractionUpdate) (record.Interaction, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.HCPName != nil {
		add("hcp_name", *upd.HCPName)
	}
	if upd.HCPSpecialty != nil {
		add("hcp_specialty", *upd.HCPSpecialty)
	}
	if upd.InteractionType != nil {
		add("interaction_type", *upd.InteractionType)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.DurationMinutes != nil {
		add("duration_minutes", *upd.DurationMinutes)
	}
	if upd.DiscussionTopics != nil {
		add("discussion_topics", *upd.DiscussionTopics)
	}
	if upd.ProductsDiscussed != nil {
		add("products_discussed", *upd.ProductsDiscussed)
	}
	if upd.SamplesProvided != nil {
		add("samples_provided", *upd.SamplesProvided)
	}
	if upd.NextSteps != nil {
		add("next_steps", *upd.NextSteps)
	}
	if upd.Sentiment != nil {
		add("sentiment", *upd.Sentiment)
	}
	if upd.SalesRepName != nil {
		add("sales_rep_name", *upd.SalesRepName)
	}

	if len(sets) == 0 {
		return s.GetInteraction(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE interactions
		SET %s, updated_at = now()
		WHERE id = $%d AND is_active
		RETURNING`+interactionColumns,
		strings.Join(sets, ", "), len(args),
	)

	row := s.pool.QueryRow(ctx, query, args...)
	out, err := scanInteraction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return record.Interaction{}, ErrNotFound
	}
	if err != nil {
		return record.Interaction{}, fmt.Errorf("update interaction: %w", err)
	}
	return out, nil
}

// DeleteInteraction soft-deletes the interaction.
func (s *Store) DeleteInteraction(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE interactions SET is_active = false, updated_at = now()
		WHERE id = $1 AND is_active`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInteraction(row pgx.Row) (record.Interaction, error) {
	var it record.Interaction
	err := row.Scan(
		&it.ID, &it.HCPName, &it.HCPSpecialty, &it.InteractionType, &it.Location, &it.DurationMinutes,
		&it.DiscussionTopics, &it.ProductsDiscussed, &it.SamplesProvided, &it.NextSteps,
		&it.Sentiment, &it.FollowUpDate, &it.SalesRepName, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}
