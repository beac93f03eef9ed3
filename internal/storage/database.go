package storage

import (
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite catalog database and keeps the schema
// current via AutoMigrate. When the table is empty and seed entries were
// provided by configuration, they are inserted so a fresh checkout can run
// without the ingestion tooling.
func OpenAndMigrate(dataSourceName string, seed []game.Pokemon) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Pokemon{}); err != nil {
		return nil, err
	}

	seedCatalog(db, seed)
	return db, nil
}

func seedCatalog(db *gorm.DB, seed []game.Pokemon) {
	if len(seed) == 0 {
		return
	}
	var count int64
	db.Model(&game.Pokemon{}).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&seed).Error; err != nil {
		logging.Error("failed to seed catalog", err, nil)
		return
	}
	logging.Info("catalog seeded", logging.Fields{"entries": len(seed)})
}
