package validation

import (
	"context"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type validationStore struct {
	db *db.DB
}

// New new validation store
func New(db *db.DB) core.ValidationStore {
	return &validationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ValidationRecord{})
		if err := tx.AutoMigrate(core.ValidationRecord{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Commit appends a record. Records are never updated or deleted; a
// second commit for the same key fails with ErrAlreadyCommitted.
func (s *validationStore) Commit(ctx context.Context, tx *db.DB, record *core.ValidationRecord) error {
	var existing core.ValidationRecord
	err := tx.Update().Where("asset_id = ? AND timestamp = ?", record.AssetID, record.Timestamp).First(&existing).Error
	if err == nil {
		return core.ErrAlreadyCommitted
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	return tx.Update().Create(record).Error
}

func (s *validationStore) Find(ctx context.Context, assetID string, timestamp int64) (*core.ValidationRecord, error) {
	var record core.ValidationRecord
	err := s.db.View().Where("asset_id = ? AND timestamp = ?", assetID, timestamp).First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, core.ErrPriceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *validationStore) Latest(ctx context.Context, assetID string) (*core.ValidationRecord, error) {
	var record core.ValidationRecord
	err := s.db.View().Where("asset_id = ?", assetID).Order("timestamp DESC").First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, core.ErrPriceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
