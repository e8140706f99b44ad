package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

const productColumns = `id, owner_id, name, description, quantity, price::float8, image_name, created_at, updated_at`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	const op = "postgres.ProductRepository.Create"

	query := fmt.Sprintf(`INSERT INTO %s(id, owner_id, name, description, quantity, price, image_name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, productsTable)

	_, err := r.db.Exec(ctx, query, p.ID, p.OwnerID, p.Name, p.Description, p.Quantity, p.Price, p.ImageName, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, bool, error) {
	const op = "postgres.ProductRepository.FindByID"

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, productColumns, productsTable)

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return p, true, nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID, keyword string) ([]*domain.Product, error) {
	const op = "postgres.ProductRepository.ListByOwner"

	query, args := listQuery(ownerID, keyword)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s (rows): %w", op, err)
	}
	return products, nil
}

// listQuery always binds owner_id; the keyword is matched literally.
func listQuery(ownerID, keyword string) (string, []interface{}) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE owner_id=$1`, productColumns, productsTable)
	args := []interface{}{ownerID}
	if keyword != "" {
		query += ` AND name ILIKE $2 ESCAPE '\'`
		args = append(args, "%"+escapeLike(keyword)+"%")
	}
	return query + ` ORDER BY created_at DESC`, args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	const op = "postgres.ProductRepository.Update"

	query := fmt.Sprintf(`UPDATE %s
	   SET name=$1, description=$2, quantity=$3, price=$4, image_name=$5, updated_at=$6
	 WHERE id=$7 AND owner_id=$8`, productsTable)

	tag, err := r.db.Exec(ctx, query, p.Name, p.Description, p.Quantity, p.Price, p.ImageName, p.UpdatedAt, p.ID, p.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	const op = "postgres.ProductRepository.Delete"

	query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1 AND owner_id=$2`, productsTable)

	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.ImageName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
