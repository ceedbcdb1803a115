package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	apperrors "github.com/garden-shops-service/internal/pkg/errors"
)

const defaultProductLimit = 50

type productRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// productRow - строка таблицы products; tags хранится как text[]
type productRow struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Price     float64         `db:"price"`
	Currency  string          `db:"currency"`
	Unit      string          `db:"unit"`
	Rating    sql.NullFloat64 `db:"rating"`
	Badge     sql.NullString  `db:"badge"`
	Tags      pq.StringArray  `db:"tags"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (row productRow) toDomain() *domain.Product {
	p := &domain.Product{
		ID:        row.ID,
		Name:      row.Name,
		Price:     row.Price,
		Currency:  strings.TrimSpace(row.Currency),
		Unit:      row.Unit,
		Tags:      []string(row.Tags),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Rating.Valid {
		rating := row.Rating.Float64
		p.Rating = &rating
	}
	if row.Badge.Valid {
		badge := row.Badge.String
		p.Badge = &badge
	}
	return p
}

const productColumns = `id, name, price, currency, unit, rating, badge, tags, created_at, updated_at`

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Badge != "" {
		query += fmt.Sprintf(" AND lower(badge) = lower($%d)", argIdx)
		args = append(args, filter.Badge)
		argIdx++
	}
	if filter.Tag != "" {
		query += fmt.Sprintf(" AND $%d = ANY(tags)", argIdx)
		args = append(args, filter.Tag)
		argIdx++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", argIdx)
	args = append(args, limit)

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to list products", zap.Any("filter", filter), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return row.toDomain(), nil
}
