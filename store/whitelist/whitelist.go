package whitelist

import (
	"context"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type whitelistStore struct {
	db *db.DB
}

// New new whitelist store
func New(db *db.DB) core.WhitelistStore {
	return &whitelistStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Identity{})
		if err := tx.AutoMigrate(core.Identity{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *whitelistStore) Add(ctx context.Context, address string) error {
	return s.db.Tx(func(tx *db.DB) error {
		var identity core.Identity
		err := tx.Update().Where("address = ?", address).First(&identity).Error
		if err == nil {
			return core.ErrAlreadyWhitelisted
		}
		if !store.IsErrNotFound(err) {
			return err
		}

		return tx.Update().Create(&core.Identity{Address: address}).Error
	})
}

func (s *whitelistStore) Remove(ctx context.Context, address string) error {
	tx := s.db.Update().Where("address = ?", address).Delete(core.Identity{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return core.ErrIdentityNotFound
	}

	return nil
}

func (s *whitelistStore) Contains(ctx context.Context, address string) (bool, error) {
	var identity core.Identity
	err := s.db.View().Where("address = ?", address).First(&identity).Error
	if store.IsErrNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *whitelistStore) List(ctx context.Context) ([]*core.Identity, error) {
	var identities []*core.Identity
	if err := s.db.View().Order("id").Find(&identities).Error; err != nil {
		return nil, err
	}

	return identities, nil
}
