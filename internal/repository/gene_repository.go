package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// GeneRepository encapsulates gene persistence.
type GeneRepository interface {
	Create(ctx context.Context, gene *domain.Gene) error
	Update(ctx context.Context, gene *domain.Gene) error
	GetByID(ctx context.Context, id string) (*domain.Gene, error)
	List(ctx context.Context, limit, offset int) ([]domain.Gene, error)
}

type geneRepository struct {
	pool *pgxpool.Pool
}

// NewGeneRepository instantiates repository.
func NewGeneRepository(pool *pgxpool.Pool) GeneRepository {
	return &geneRepository{pool: pool}
}

const geneColumns = `id, name, alias, description, notation, inheritance_type, category, is_deleted, created_at, updated_at`

func (r *geneRepository) Create(ctx context.Context, gene *domain.Gene) error {
	const query = `
        INSERT INTO genes (id, name, alias, description, notation, inheritance_type, category, is_deleted, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		gene.ID,
		gene.Name,
		gene.Alias,
		gene.Description,
		gene.Notation,
		gene.InheritanceType,
		gene.Category,
		gene.IsDeleted,
		gene.CreatedAt,
		gene.UpdatedAt,
	)
	return err
}

func (r *geneRepository) Update(ctx context.Context, gene *domain.Gene) error {
	const query = `
        UPDATE genes SET name=$1, alias=$2, description=$3, notation=$4, inheritance_type=$5,
            category=$6, is_deleted=$7, updated_at=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		gene.Name,
		gene.Alias,
		gene.Description,
		gene.Notation,
		gene.InheritanceType,
		gene.Category,
		gene.IsDeleted,
		gene.UpdatedAt,
		gene.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *geneRepository) GetByID(ctx context.Context, id string) (*domain.Gene, error) {
	const query = `SELECT ` + geneColumns + ` FROM genes WHERE id=$1 AND is_deleted=FALSE`
	gene, err := scanGene(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if gene.Pictures, err = loadPictures(ctx, r.pool, "gene", gene.ID); err != nil {
		return nil, err
	}
	return gene, nil
}

func (r *geneRepository) List(ctx context.Context, limit, offset int) ([]domain.Gene, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const query = `SELECT ` + geneColumns + `
        FROM genes WHERE is_deleted=FALSE
        ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genes := []domain.Gene{}
	for rows.Next() {
		gene, err := scanGene(rows)
		if err != nil {
			return nil, err
		}
		genes = append(genes, *gene)
	}
	return genes, rows.Err()
}

func scanGene(row pgx.Row) (*domain.Gene, error) {
	var gene domain.Gene
	if err := row.Scan(
		&gene.ID,
		&gene.Name,
		&gene.Alias,
		&gene.Description,
		&gene.Notation,
		&gene.InheritanceType,
		&gene.Category,
		&gene.IsDeleted,
		&gene.CreatedAt,
		&gene.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &gene, nil
}
