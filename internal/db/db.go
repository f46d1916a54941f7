package db

import (
	"fmt"
	"sync"
	"time"

	"proxytray/internal/factory"
	"proxytray/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// writeMu keeps a single writer on the store.
var writeMu sync.Mutex

func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// logger.Error hides "SLOW SQL" warnings (default is Warn)
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Server{})
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// NewServer flattens a configuration and its extras into a storable row.
func NewServer(cfg factory.Configuration, source string) model.Server {
	extras := cfg.Extras()
	return model.Server{
		Hash:      factory.Fingerprint(cfg),
		Family:    cfg.Family().String(),
		Config:    factory.Pack(cfg),
		Source:    source,
		CreatedAt: time.Now(),
		Remark:    extras.Remark,
		Delay:     extras.Delay,
		Speed:     extras.Speed,
		Protocol:  cfg.ItemProtocol(),
		Address:   cfg.ItemAddress(),
		Port:      cfg.ItemPort(),
	}
}

// SaveConfigurations stores cfgs in one transaction. Rows whose fingerprint is
// already stored are skipped; the number of inserted rows is returned.
func SaveConfigurations(db *gorm.DB, cfgs []factory.Configuration, source string) (int64, error) {
	if len(cfgs) == 0 {
		return 0, nil
	}
	batch := make([]model.Server, 0, len(cfgs))
	for _, cfg := range cfgs {
		batch = append(batch, NewServer(cfg, source))
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	var inserted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash"}},
			DoNothing: true,
		}).CreateInBatches(batch, 500)
		inserted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save configurations: %w", err)
	}
	return inserted, nil
}

// Restore rebuilds the configuration of a stored row, extras included.
func Restore(server model.Server) (factory.Configuration, error) {
	cfg, err := factory.Unpack(factory.ParseFamily(server.Family), server.Config)
	if err != nil {
		return nil, fmt.Errorf("server %d: %w", server.ID, err)
	}
	*cfg.Extras() = factory.Extras{
		Remark: server.Remark,
		Delay:  server.Delay,
		Speed:  server.Speed,
	}
	return cfg, nil
}

// Update writes cfg back over the row it was restored from.
func Update(db *gorm.DB, server *model.Server, cfg factory.Configuration) error {
	fresh := NewServer(cfg, server.Source)

	writeMu.Lock()
	defer writeMu.Unlock()

	return db.Model(server).Updates(map[string]any{
		"hash":     fresh.Hash,
		"family":   fresh.Family,
		"config":   fresh.Config,
		"remark":   fresh.Remark,
		"delay":    fresh.Delay,
		"speed":    fresh.Speed,
		"protocol": fresh.Protocol,
		"address":  fresh.Address,
		"port":     fresh.Port,
	}).Error
}

// Remove deletes the rows with the given ids and returns how many were removed.
func Remove(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	writeMu.Lock()
	defer writeMu.Unlock()

	result := db.Delete(&model.Server{}, ids)
	return result.RowsAffected, result.Error
}

// Find returns the rows with the given ids, or every row when ids is empty, by id.
func Find(db *gorm.DB, ids []uint) ([]model.Server, error) {
	var servers []model.Server
	q := db.Order("id")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

// FindByFamilies returns the rows of the given families, or every row when
// families is empty. Names are matched through factory.ParseFamily.
func FindByFamilies(db *gorm.DB, families []string) ([]model.Server, error) {
	var servers []model.Server
	q := db.Order("id")
	if len(families) > 0 {
		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, factory.ParseFamily(f).String())
		}
		q = q.Where("family IN ?", names)
	}
	if err := q.Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}
