package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, category, daily_rate, quantity, rented, type, rental_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.DailyRate,
		p.Quantity, p.Rented, p.Type, p.RentalCount, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	if len(p.Parts) > 0 {
		return r.insertParts(ctx, p.ID, p.Parts)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name, description, category, daily_rate, quantity, rented, type, rental_count, created_on, updated_on
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Category,
		&p.DailyRate, &p.Quantity, &p.Rented, &p.Type, &p.RentalCount, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Type == domain.ProductTypeCombo {
		parts, err := r.loadParts(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Parts = parts
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, daily_rate=$4, quantity=$5, type=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.DailyRate, p.Quantity, p.Type, time.Now(), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, description, category, daily_rate, quantity, rented, type, rental_count, created_on, updated_on
	          FROM products ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.DailyRate,
			&p.Quantity, &p.Rented, &p.Type, &p.RentalCount, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].Type != domain.ProductTypeCombo {
			continue
		}
		parts, err := r.loadParts(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Parts = parts
	}
	return products, nil
}

func (r *productRepository) SetParts(ctx context.Context, productID int64, parts []domain.ProductPart, dailyRate int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM product_parts WHERE product_id = $1`, productID); err != nil {
		return err
	}
	if err := r.insertParts(ctx, productID, parts); err != nil {
		return err
	}
	// The derived rate is written in the same transaction as the parts so it
	// is never left stale.
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET daily_rate = $1, updated_on = $2 WHERE id = $3`, dailyRate, time.Now(), productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productRepository) Reserve(ctx context.Context, id int64, qty int64) (bool, error) {
	// Conditional increment: the availability check and the write are one
	// statement, so concurrent borrows cannot oversell.
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET rented = rented + $2, updated_on = now() WHERE id = $1 AND quantity - rented >= $2`,
		id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *productRepository) Release(ctx context.Context, id int64, qty int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET rented = GREATEST(rented - $2, 0), updated_on = now() WHERE id = $1`,
		id, qty)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productRepository) IncrementRentalCount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET rental_count = rental_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productRepository) insertParts(ctx context.Context, productID int64, parts []domain.ProductPart) error {
	query := `INSERT INTO product_parts (product_id, part_product_id, quantity, daily_rate, position)
	          VALUES ($1, $2, $3, $4, $5)`
	for i, part := range parts {
		if _, err := r.db.ExecContext(ctx, query, productID, part.PartProductID, part.Quantity, part.DailyRate, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) loadParts(ctx context.Context, productID int64) ([]domain.ProductPart, error) {
	query := `SELECT id, product_id, part_product_id, quantity, daily_rate, position
	          FROM product_parts WHERE product_id = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.ProductPart
	for rows.Next() {
		var part domain.ProductPart
		if err := rows.Scan(&part.ID, &part.ProductID, &part.PartProductID, &part.Quantity, &part.DailyRate, &part.Position); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// requireRow maps a zero-row update or delete to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
