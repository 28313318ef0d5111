package db

import (
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/filmfriend/filmfriend/pkg/logger"
)

// WithLogger routes gorm's query log through the application logger.
func WithLogger(log *logger.Logger) DBOptions {
	return func(gormDB *gorm.DB) error {
		gormDB.Config.Logger = gormLogger.New(
			log.Log,
			gormLogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
		return nil
	}
}
