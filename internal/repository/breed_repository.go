package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// BreedRepository encapsulates breed persistence.
type BreedRepository interface {
	Create(ctx context.Context, breed *domain.Breed) error
	Update(ctx context.Context, breed *domain.Breed) error
	GetByID(ctx context.Context, id string) (*domain.Breed, error)
	List(ctx context.Context, limit, offset int) ([]domain.Breed, error)
}

type breedRepository struct {
	pool *pgxpool.Pool
}

// NewBreedRepository instantiates repository.
func NewBreedRepository(pool *pgxpool.Pool) BreedRepository {
	return &breedRepository{pool: pool}
}

func (r *breedRepository) Create(ctx context.Context, breed *domain.Breed) error {
	const query = `
        INSERT INTO breeds (id, name, description, adult_after_years, prime_after_years, senior_after_years, is_deleted, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.pool.Exec(ctx, query,
		breed.ID,
		breed.Name,
		breed.Description,
		breed.Thresholds.AdultAfterYears,
		breed.Thresholds.PrimeAfterYears,
		breed.Thresholds.SeniorAfterYears,
		breed.IsDeleted,
		breed.CreatedAt,
		breed.UpdatedAt,
	)
	return err
}

func (r *breedRepository) Update(ctx context.Context, breed *domain.Breed) error {
	const query = `
        UPDATE breeds SET name=$1, description=$2, adult_after_years=$3, prime_after_years=$4,
            senior_after_years=$5, is_deleted=$6, updated_at=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		breed.Name,
		breed.Description,
		breed.Thresholds.AdultAfterYears,
		breed.Thresholds.PrimeAfterYears,
		breed.Thresholds.SeniorAfterYears,
		breed.IsDeleted,
		breed.UpdatedAt,
		breed.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *breedRepository) GetByID(ctx context.Context, id string) (*domain.Breed, error) {
	const query = `
        SELECT id, name, description, adult_after_years, prime_after_years, senior_after_years, is_deleted, created_at, updated_at
        FROM breeds WHERE id=$1 AND is_deleted=FALSE`
	breed, err := scanBreed(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if breed.Pictures, err = loadPictures(ctx, r.pool, "breed", breed.ID); err != nil {
		return nil, err
	}
	return breed, nil
}

func (r *breedRepository) List(ctx context.Context, limit, offset int) ([]domain.Breed, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const query = `
        SELECT id, name, description, adult_after_years, prime_after_years, senior_after_years, is_deleted, created_at, updated_at
        FROM breeds WHERE is_deleted=FALSE
        ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breeds := []domain.Breed{}
	for rows.Next() {
		breed, err := scanBreed(rows)
		if err != nil {
			return nil, err
		}
		breeds = append(breeds, *breed)
	}
	return breeds, rows.Err()
}

func scanBreed(row pgx.Row) (*domain.Breed, error) {
	var breed domain.Breed
	if err := row.Scan(
		&breed.ID,
		&breed.Name,
		&breed.Description,
		&breed.Thresholds.AdultAfterYears,
		&breed.Thresholds.PrimeAfterYears,
		&breed.Thresholds.SeniorAfterYears,
		&breed.IsDeleted,
		&breed.CreatedAt,
		&breed.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &breed, nil
}
