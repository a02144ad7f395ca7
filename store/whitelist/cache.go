package whitelist

import (
	"context"
	"fmt"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a whitelist store with a read-through membership cache.
//
// Mutations invalidate the touched address only; the gate check is the
// hot path and must stay O(1).
func Cache(store core.WhitelistStore, exp time.Duration) core.WhitelistStore {
	return &cacheWhitelistStore{
		WhitelistStore: store,
		cache:          gcache.New(2048).LRU().Expiration(exp).Build(),
		sf:             &singleflight.Group{},
	}
}

type cacheWhitelistStore struct {
	core.WhitelistStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheWhitelistStore) Add(ctx context.Context, address string) error {
	if err := s.WhitelistStore.Add(ctx, address); err != nil {
		return err
	}
	s.cache.Remove(s.addressKey(address))
	return nil
}

func (s *cacheWhitelistStore) Remove(ctx context.Context, address string) error {
	if err := s.WhitelistStore.Remove(ctx, address); err != nil {
		return err
	}
	s.cache.Remove(s.addressKey(address))
	return nil
}

func (s *cacheWhitelistStore) Contains(ctx context.Context, address string) (bool, error) {
	key := s.addressKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if ok, cached := v.(bool); cached {
			return ok, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ok, err := s.WhitelistStore.Contains(ctx, address)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, ok)
		return ok, nil
	})
	if err != nil {
		return false, err
	}

	return v.(bool), nil
}

func (s *cacheWhitelistStore) addressKey(address string) string {
	return fmt.Sprintf("whitelist:address:%s", address)
}
