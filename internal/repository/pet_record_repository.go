package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// PetRecordFilter narrows record listings.
type PetRecordFilter struct {
	RecordType *domain.RecordType
	Limit      int
	Offset     int
}

// PetRecordRepository encapsulates care record persistence.
type PetRecordRepository interface {
	Create(ctx context.Context, record *domain.PetRecord) error
	Update(ctx context.Context, record *domain.PetRecord) error
	GetByID(ctx context.Context, id string) (*domain.PetRecord, error)
	ListByPet(ctx context.Context, petID string, filter PetRecordFilter) ([]domain.PetRecord, error)
}

type petRecordRepository struct {
	pool *pgxpool.Pool
}

// NewPetRecordRepository instantiates repository.
func NewPetRecordRepository(pool *pgxpool.Pool) PetRecordRepository {
	return &petRecordRepository{pool: pool}
}

func (r *petRecordRepository) Create(ctx context.Context, record *domain.PetRecord) error {
	data, err := json.Marshal(record.Data)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO pet_records (id, pet_id, creator_id, record_type, data, notes, is_deleted, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.pool.Exec(ctx, query,
		record.ID,
		record.PetID,
		record.CreatorID,
		record.RecordType,
		data,
		record.Notes,
		record.IsDeleted,
		record.CreatedAt,
		record.UpdatedAt,
	)
	return err
}

func (r *petRecordRepository) Update(ctx context.Context, record *domain.PetRecord) error {
	data, err := json.Marshal(record.Data)
	if err != nil {
		return err
	}
	const query = `
        UPDATE pet_records SET data=$1, notes=$2, is_deleted=$3, updated_at=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		data,
		record.Notes,
		record.IsDeleted,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRecordRepository) GetByID(ctx context.Context, id string) (*domain.PetRecord, error) {
	const query = `
        SELECT id, pet_id, creator_id, record_type, data, notes, is_deleted, created_at, updated_at
        FROM pet_records WHERE id=$1 AND is_deleted=FALSE`
	return scanPetRecord(r.pool.QueryRow(ctx, query, id))
}

func (r *petRecordRepository) ListByPet(ctx context.Context, petID string, filter PetRecordFilter) ([]domain.PetRecord, error) {
	query := `
        SELECT id, pet_id, creator_id, record_type, data, notes, is_deleted, created_at, updated_at
        FROM pet_records WHERE pet_id=$1 AND is_deleted=FALSE`
	args := []any{petID}
	if filter.RecordType != nil {
		args = append(args, *filter.RecordType)
		query += ` AND record_type=$` + itoa(len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filter.Offset)
	query += ` ORDER BY created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.PetRecord{}
	for rows.Next() {
		record, err := scanPetRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanPetRecord(row pgx.Row) (*domain.PetRecord, error) {
	var (
		record domain.PetRecord
		data   []byte
	)
	if err := row.Scan(
		&record.ID,
		&record.PetID,
		&record.CreatorID,
		&record.RecordType,
		&data,
		&record.Notes,
		&record.IsDeleted,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	record.Data = domain.RecordData{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &record.Data); err != nil {
			return nil, err
		}
	}
	return &record, nil
}
