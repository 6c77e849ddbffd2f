package migration

import (
	"fmt"

	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/logger"
	"gorm.io/gorm"
)

// Run creates or updates the schema: shared tables first, then one
// write table per board.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.Report{},
		&domain.Penalty{},
		&domain.DeletionLog{},
		&domain.BoardFile{},
	); err != nil {
		return fmt.Errorf("failed to migrate shared tables: %w", err)
	}

	for _, boardType := range domain.AllBoardTypes {
		if err := db.Table(repository.WriteTableName(boardType)).AutoMigrate(&domain.WriteRow{}); err != nil {
			return fmt.Errorf("failed to migrate board table %s: %w", boardType, err)
		}
	}

	logger.GetLogger().Info().
		Int("board_tables", len(domain.AllBoardTypes)).
		Msg("schema migration complete")
	return nil
}

// AddVisibilityColumns retrofits visibility/hide_reason/deleted_at/
// deleted_by onto a pre-existing board table that predates soft delete.
// Safe to call repeatedly: existing columns are skipped.
func AddVisibilityColumns(db *gorm.DB, boardType domain.BoardType) error {
	table := repository.WriteTableName(boardType)

	var count int64
	db.Raw(`
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
		AND COLUMN_NAME = 'visibility'
	`, table).Scan(&count)

	if count > 0 {
		return nil
	}

	sql := fmt.Sprintf(`
		ALTER TABLE %s
		ADD COLUMN visibility VARCHAR(10) NOT NULL DEFAULT 'visible',
		ADD COLUMN hide_reason VARCHAR(255) NULL DEFAULT NULL,
		ADD COLUMN deleted_at DATETIME NULL DEFAULT NULL,
		ADD COLUMN deleted_by BIGINT UNSIGNED NULL DEFAULT NULL,
		ADD INDEX idx_visibility (visibility)
	`, table)

	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to alter table %s: %w", table, err)
	}

	return nil
}

// AddVisibilityColumnsToAllBoards runs AddVisibilityColumns for every board
func AddVisibilityColumnsToAllBoards(db *gorm.DB) error {
	for _, boardType := range domain.AllBoardTypes {
		if err := AddVisibilityColumns(db, boardType); err != nil {
			logger.GetLogger().Warn().Err(err).
				Str("board_type", string(boardType)).
				Msg("failed to add visibility columns")
			continue
		}
	}
	return nil
}
