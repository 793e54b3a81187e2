package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// Gene mappings and pictures live inside their owning aggregate, so saves
// rewrite the child rows wholesale within the owning transaction.

func replaceChildren(ctx context.Context, tx pgx.Tx, ownerType, ownerID string, mappings []domain.MorphGeneMapping, pictures []domain.Picture) error {
	if err := replaceGeneMappings(ctx, tx, ownerType, ownerID, mappings); err != nil {
		return err
	}
	return replacePictures(ctx, tx, ownerType, ownerID, pictures)
}

func replaceGeneMappings(ctx context.Context, tx pgx.Tx, ownerType, ownerID string, mappings []domain.MorphGeneMapping) error {
	if _, err := tx.Exec(ctx, `DELETE FROM gene_mappings WHERE owner_type=$1 AND owner_id=$2`, ownerType, ownerID); err != nil {
		return err
	}
	const query = `
        INSERT INTO gene_mappings (id, owner_type, owner_id, gene_id, zygosity, is_required, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	for _, mapping := range mappings {
		if _, err := tx.Exec(ctx, query,
			mapping.ID,
			ownerType,
			ownerID,
			mapping.GeneID,
			mapping.Zygosity,
			mapping.IsRequired,
			mapping.CreatedAt,
			mapping.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func replacePictures(ctx context.Context, tx pgx.Tx, ownerType, ownerID string, pictures []domain.Picture) error {
	if _, err := tx.Exec(ctx, `DELETE FROM pictures WHERE owner_type=$1 AND owner_id=$2`, ownerType, ownerID); err != nil {
		return err
	}
	const query = `
        INSERT INTO pictures (id, owner_type, owner_id, url, kind, position, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	for i, picture := range pictures {
		if _, err := tx.Exec(ctx, query,
			picture.ID,
			ownerType,
			ownerID,
			picture.URL,
			picture.Kind,
			i,
			picture.CreatedAt,
			picture.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func loadGeneMappings(ctx context.Context, pool *pgxpool.Pool, ownerType, ownerID string) ([]domain.MorphGeneMapping, error) {
	const query = `
        SELECT id, gene_id, zygosity, is_required, created_at, updated_at
        FROM gene_mappings WHERE owner_type=$1 AND owner_id=$2
        ORDER BY created_at`
	rows, err := pool.Query(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mappings := []domain.MorphGeneMapping{}
	for rows.Next() {
		var mapping domain.MorphGeneMapping
		if err := rows.Scan(
			&mapping.ID,
			&mapping.GeneID,
			&mapping.Zygosity,
			&mapping.IsRequired,
			&mapping.CreatedAt,
			&mapping.UpdatedAt,
		); err != nil {
			return nil, err
		}
		mappings = append(mappings, mapping)
	}
	return mappings, rows.Err()
}

func loadPictures(ctx context.Context, pool *pgxpool.Pool, ownerType, ownerID string) ([]domain.Picture, error) {
	const query = `
        SELECT id, url, kind, created_at, updated_at
        FROM pictures WHERE owner_type=$1 AND owner_id=$2
        ORDER BY position`
	rows, err := pool.Query(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pictures := []domain.Picture{}
	for rows.Next() {
		var picture domain.Picture
		if err := rows.Scan(
			&picture.ID,
			&picture.URL,
			&picture.Kind,
			&picture.CreatedAt,
			&picture.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pictures = append(pictures, picture)
	}
	return pictures, rows.Err()
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
