package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain/repository"
	"github.com/garden-shops-service/internal/repository/postgres"
)

// NewProductRepositoryForTest creates a product repository with test database and logger
func NewProductRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ProductRepository {
	return postgres.NewProductRepository(postgres.NewDBForTest(db, logger))
}
