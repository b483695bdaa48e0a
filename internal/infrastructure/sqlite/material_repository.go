package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación del puerto RawMaterialRepository sobre SQLite.
type RawMaterialRepo struct {
	q Querier
}

func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, code, name, unit, stock, min_stock, max_stock, unit_price,
	supplier, is_active, created_by, created_at, updated_at`

// Create persiste una materia prima nueva. Code es único.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO raw_materials (code, name, unit, stock, min_stock, max_stock, unit_price, supplier, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Code, m.Name, m.Unit, m.Stock, m.MinStock, m.MaxStock, m.UnitPrice,
		nullString(m.Supplier), m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert raw material: %w", err)
	}
	return res.LastInsertId()
}

func (r *RawMaterialRepo) GetByID(ctx context.Context, id int64) (*entity.RawMaterial, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+rawMaterialColumns+` FROM raw_materials WHERE id = ?`, id)
	m, err := scanRawMaterial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetByCode devuelve (nil, nil) si no existe.
func (r *RawMaterialRepo) GetByCode(ctx context.Context, code string) (*entity.RawMaterial, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+rawMaterialColumns+` FROM raw_materials WHERE code = ?`, code)
	m, err := scanRawMaterial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material by code: %w", err)
	}
	return m, nil
}

// GetByName busca por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *RawMaterialRepo) GetByName(ctx context.Context, name string) (*entity.RawMaterial, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+rawMaterialColumns+` FROM raw_materials WHERE name = ?`, name)
	m, err := scanRawMaterial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material by name: %w", err)
	}
	return m, nil
}

// Update actualiza nombre, unidad, stock y precio (usado por el sync).
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE raw_materials
		 SET name = ?, unit = ?, stock = ?, unit_price = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		m.Name, m.Unit, m.Stock, m.UnitPrice, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// ListActive materias primas activas ordenadas por nombre.
func (r *RawMaterialRepo) ListActive(ctx context.Context) ([]*entity.RawMaterial, error) {
	return r.list(ctx,
		`SELECT `+rawMaterialColumns+` FROM raw_materials WHERE is_active = 1 ORDER BY name`)
}

// ListLowStock materias primas activas con stock en o bajo el mínimo.
func (r *RawMaterialRepo) ListLowStock(ctx context.Context) ([]*entity.RawMaterial, error) {
	return r.list(ctx,
		`SELECT `+rawMaterialColumns+` FROM raw_materials
		 WHERE stock <= min_stock AND is_active = 1
		 ORDER BY name`)
}

// DecrementStock descuenta cantidad del stock. Se usa dentro de la
// transacción que inserta el movimiento OUT correspondiente.
func (r *RawMaterialRepo) DecrementStock(ctx context.Context, id int64, quantity decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE raw_materials
		 SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RawMaterialRepo) list(ctx context.Context, query string) ([]*entity.RawMaterial, error) {
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.RawMaterial
	for rows.Next() {
		m, err := scanRawMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func scanRawMaterial(row rowScanner) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	var supplier sql.NullString
	var createdBy sql.NullInt64
	var isActive int
	var createdAt, updatedAt string
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Unit, &m.Stock, &m.MinStock, &m.MaxStock,
		&m.UnitPrice, &supplier, &isActive, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Supplier = supplier.String
	m.IsActive = isActive != 0
	m.CreatedBy = createdBy.Int64
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return &m, nil
}
