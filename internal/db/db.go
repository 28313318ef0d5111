// Package db constructs the application's database handle. Construction is
// explicit: the caller owns the handle and its shutdown, there are no
// package-level singletons.
package db

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/filmfriend/filmfriend/pkg/logger"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

type DBOptions func(*gorm.DB) error

// NewDB opens a PostgreSQL connection and idempotently migrates the given
// models. Schema creation failures abort startup.
func NewDB(ctx context.Context, dsn string, models []interface{}, opts ...DBOptions) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "DB initialization canceled")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to connect to Database", err.Error())
	}

	for _, opt := range opts {
		if err := opt(gormDB); err != nil {
			return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to apply DB Options", err.Error())
		}
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to migrate models", err.Error())
	}

	return gormDB, nil
}

// CloseDB closes the underlying sql.DB of a gorm handle.
func CloseDB(gormDB *gorm.DB, log *logger.Logger) error {
	if gormDB == nil {
		return nil
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to get DB handle for closing")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}

	if err := sqlDB.Close(); err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("PostgreSQL database close failed")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}
	log.Info(context.Background()).Logs("PostgreSQL database connection closed")
	return nil
}
