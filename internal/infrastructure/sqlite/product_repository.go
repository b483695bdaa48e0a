package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, presentation, description, unit, is_active,
	created_by, created_at, updated_at`

// Create persiste un producto nuevo. Code es único.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO products (code, name, presentation, description, unit, created_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, nullString(p.Presentation), nullString(p.Description), p.Unit, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un producto activo por id.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND is_active = 1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código, activo o no. Devuelve
// (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = ?`, code)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// Update actualiza los campos mutables y estampa updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, presentation = ?, description = ?, unit = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Name, nullString(p.Presentation), nullString(p.Description), p.Unit, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListActive productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var presentation, description sql.NullString
	var createdBy sql.NullInt64
	var isActive int
	var createdAt, updatedAt string
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &presentation, &description, &p.Unit,
		&isActive, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Presentation = presentation.String
	p.Description = description.String
	p.IsActive = isActive != 0
	p.CreatedBy = createdBy.Int64
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
