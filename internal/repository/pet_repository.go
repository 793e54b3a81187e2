package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// PetFilter captures pet listing parameters.
type PetFilter struct {
	OwnerID      *string
	BreedID      *string
	MorphologyID *string
	Gender       *domain.Gender
	Limit        int
	Offset       int
}

// PetRepository encapsulates pet persistence, including the gene mappings
// and pictures inside the aggregate boundary.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	ListWithFilter(ctx context.Context, filter PetFilter) ([]domain.Pet, error)
}

type petRepository struct {
	pool *pgxpool.Pool
}

// NewPetRepository instantiates repository.
func NewPetRepository(pool *pgxpool.Pool) PetRepository {
	return &petRepository{pool: pool}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO pets (id, name, description, birth_date, owner_id, breed_id, gender, morphology_id, is_deleted, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	if _, err := tx.Exec(ctx, query,
		pet.ID,
		pet.Name,
		pet.Description,
		pet.BirthDate,
		pet.OwnerID,
		pet.BreedID,
		pet.Gender,
		pet.MorphologyID,
		pet.IsDeleted,
		pet.CreatedAt,
		pet.UpdatedAt,
	); err != nil {
		return err
	}
	if err := replaceChildren(ctx, tx, "pet", pet.ID, pet.GeneMappings, pet.Pictures); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE pets SET name=$1, description=$2, birth_date=$3, owner_id=$4, breed_id=$5,
            gender=$6, morphology_id=$7, is_deleted=$8, updated_at=$9
        WHERE id=$10`
	cmd, err := tx.Exec(ctx, query,
		pet.Name,
		pet.Description,
		pet.BirthDate,
		pet.OwnerID,
		pet.BreedID,
		pet.Gender,
		pet.MorphologyID,
		pet.IsDeleted,
		pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if err := replaceChildren(ctx, tx, "pet", pet.ID, pet.GeneMappings, pet.Pictures); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	const query = `
        SELECT id, name, description, birth_date, owner_id, breed_id, gender, morphology_id, is_deleted, created_at, updated_at
        FROM pets WHERE id=$1 AND is_deleted=FALSE`
	pet, err := scanPet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if pet.GeneMappings, err = loadGeneMappings(ctx, r.pool, "pet", pet.ID); err != nil {
		return nil, err
	}
	if pet.Pictures, err = loadPictures(ctx, r.pool, "pet", pet.ID); err != nil {
		return nil, err
	}
	return pet, nil
}

func (r *petRepository) ListWithFilter(ctx context.Context, filter PetFilter) ([]domain.Pet, error) {
	query := `
        SELECT id, name, description, birth_date, owner_id, breed_id, gender, morphology_id, is_deleted, created_at, updated_at
        FROM pets WHERE is_deleted=FALSE`
	args := []any{}
	idx := 1

	appendClause := func(clause string, value any) {
		query += ` AND ` + clause + `$` + itoa(idx)
		args = append(args, value)
		idx++
	}

	if filter.OwnerID != nil {
		appendClause("owner_id=", *filter.OwnerID)
	}
	if filter.BreedID != nil {
		appendClause("breed_id=", *filter.BreedID)
	}
	if filter.MorphologyID != nil {
		appendClause("morphology_id=", *filter.MorphologyID)
	}
	if filter.Gender != nil {
		appendClause("gender=", *filter.Gender)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += ` ORDER BY created_at DESC LIMIT $` + itoa(idx) + ` OFFSET $` + itoa(idx+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := []domain.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *pet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range pets {
		if pets[i].GeneMappings, err = loadGeneMappings(ctx, r.pool, "pet", pets[i].ID); err != nil {
			return nil, err
		}
		if pets[i].Pictures, err = loadPictures(ctx, r.pool, "pet", pets[i].ID); err != nil {
			return nil, err
		}
	}
	return pets, nil
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var pet domain.Pet
	if err := row.Scan(
		&pet.ID,
		&pet.Name,
		&pet.Description,
		&pet.BirthDate,
		&pet.OwnerID,
		&pet.BreedID,
		&pet.Gender,
		&pet.MorphologyID,
		&pet.IsDeleted,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pet, nil
}
