package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// MorphologyRepository encapsulates morphology persistence, including the
// gene mappings owned by the aggregate.
type MorphologyRepository interface {
	Create(ctx context.Context, morph *domain.Morphology) error
	Update(ctx context.Context, morph *domain.Morphology) error
	GetByID(ctx context.Context, id string) (*domain.Morphology, error)
	List(ctx context.Context, limit, offset int) ([]domain.Morphology, error)
}

type morphologyRepository struct {
	pool *pgxpool.Pool
}

// NewMorphologyRepository instantiates repository.
func NewMorphologyRepository(pool *pgxpool.Pool) MorphologyRepository {
	return &morphologyRepository{pool: pool}
}

func (r *morphologyRepository) Create(ctx context.Context, morph *domain.Morphology) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO morphologies (id, name, description, is_deleted, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, query,
		morph.ID,
		morph.Name,
		morph.Description,
		morph.IsDeleted,
		morph.CreatedAt,
		morph.UpdatedAt,
	); err != nil {
		return err
	}
	if err := replaceChildren(ctx, tx, "morphology", morph.ID, morph.GeneMappings, morph.Pictures); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *morphologyRepository) Update(ctx context.Context, morph *domain.Morphology) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE morphologies SET name=$1, description=$2, is_deleted=$3, updated_at=$4
        WHERE id=$5`
	cmd, err := tx.Exec(ctx, query,
		morph.Name,
		morph.Description,
		morph.IsDeleted,
		morph.UpdatedAt,
		morph.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if err := replaceChildren(ctx, tx, "morphology", morph.ID, morph.GeneMappings, morph.Pictures); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *morphologyRepository) GetByID(ctx context.Context, id string) (*domain.Morphology, error) {
	const query = `
        SELECT id, name, description, is_deleted, created_at, updated_at
        FROM morphologies WHERE id=$1 AND is_deleted=FALSE`
	morph, err := scanMorphology(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if morph.GeneMappings, err = loadGeneMappings(ctx, r.pool, "morphology", morph.ID); err != nil {
		return nil, err
	}
	if morph.Pictures, err = loadPictures(ctx, r.pool, "morphology", morph.ID); err != nil {
		return nil, err
	}
	return morph, nil
}

func (r *morphologyRepository) List(ctx context.Context, limit, offset int) ([]domain.Morphology, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const query = `
        SELECT id, name, description, is_deleted, created_at, updated_at
        FROM morphologies WHERE is_deleted=FALSE
        ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	morphs := []domain.Morphology{}
	for rows.Next() {
		morph, err := scanMorphology(rows)
		if err != nil {
			return nil, err
		}
		morphs = append(morphs, *morph)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range morphs {
		if morphs[i].GeneMappings, err = loadGeneMappings(ctx, r.pool, "morphology", morphs[i].ID); err != nil {
			return nil, err
		}
	}
	return morphs, nil
}

func scanMorphology(row pgx.Row) (*domain.Morphology, error) {
	var morph domain.Morphology
	if err := row.Scan(
		&morph.ID,
		&morph.Name,
		&morph.Description,
		&morph.IsDeleted,
		&morph.CreatedAt,
		&morph.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &morph, nil
}
