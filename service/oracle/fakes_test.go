package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/store/db"
)

type fakeRequestStore struct {
	mu    sync.Mutex
	items map[string]*core.PriceRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{items: map[string]*core.PriceRequest{}}
}

func requestKey(assetID string, timestamp int64) string {
	return fmt.Sprintf("%s:%d", assetID, timestamp)
}

func (s *fakeRequestStore) Create(ctx context.Context, req *core.PriceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := requestKey(req.AssetID, req.Timestamp)
	if existing, ok := s.items[key]; ok {
		if existing.State != core.RequestStateRejected {
			return core.ErrDuplicateRequest
		}
	}

	clone := *req
	clone.State = core.RequestStatePending
	clone.CreatedAt = time.Now()
	s.items[key] = &clone
	return nil
}

func (s *fakeRequestStore) Find(ctx context.Context, assetID string, timestamp int64) (*core.PriceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.items[requestKey(assetID, timestamp)]
	if !ok {
		return nil, core.ErrNoSuchRequest
	}

	clone := *req
	return &clone, nil
}

func (s *fakeRequestStore) ListPending(ctx context.Context, limit int) ([]*core.PriceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reqs []*core.PriceRequest
	for _, req := range s.items {
		if req.State == core.RequestStatePending && len(reqs) < limit {
			clone := *req
			reqs = append(reqs, &clone)
		}
	}

	return reqs, nil
}

func (s *fakeRequestStore) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]*core.PriceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reqs []*core.PriceRequest
	for _, req := range s.items {
		if req.State == core.RequestStatePending && req.CreatedAt.Before(before) && len(reqs) < limit {
			clone := *req
			reqs = append(reqs, &clone)
		}
	}

	return reqs, nil
}

func (s *fakeRequestStore) MarkFulfilled(ctx context.Context, tx *db.DB, assetID string, timestamp int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.items[requestKey(assetID, timestamp)]
	if !ok || req.State != core.RequestStatePending {
		return core.ErrNoSuchRequest
	}

	req.State = core.RequestStateFulfilled
	return nil
}

func (s *fakeRequestStore) MarkRejected(ctx context.Context, assetID string, timestamp int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.items[requestKey(assetID, timestamp)]
	if !ok || req.State != core.RequestStatePending {
		return core.ErrNoSuchRequest
	}

	req.State = core.RequestStateRejected
	req.Reason = reason
	return nil
}

type fakeValidationStore struct {
	mu    sync.Mutex
	items map[string]*core.ValidationRecord
}

func newFakeValidationStore() *fakeValidationStore {
	return &fakeValidationStore{items: map[string]*core.ValidationRecord{}}
}

func (s *fakeValidationStore) Commit(ctx context.Context, tx *db.DB, record *core.ValidationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := requestKey(record.AssetID, record.Timestamp)
	if _, ok := s.items[key]; ok {
		return core.ErrAlreadyCommitted
	}

	clone := *record
	clone.CreatedAt = time.Now()
	s.items[key] = &clone
	return nil
}

func (s *fakeValidationStore) Find(ctx context.Context, assetID string, timestamp int64) (*core.ValidationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.items[requestKey(assetID, timestamp)]
	if !ok {
		return nil, core.ErrPriceNotFound
	}

	clone := *record
	return &clone, nil
}

func (s *fakeValidationStore) Latest(ctx context.Context, assetID string) (*core.ValidationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *core.ValidationRecord
	for _, record := range s.items {
		if record.AssetID != assetID {
			continue
		}
		if latest == nil || record.Timestamp > latest.Timestamp {
			latest = record
		}
	}

	if latest == nil {
		return nil, core.ErrPriceNotFound
	}

	clone := *latest
	return &clone, nil
}

type fakeRegistry struct {
	mu        sync.Mutex
	owner     string
	signer    string
	whitelist map[string]bool
}

func newFakeRegistry(owner, signer string) *fakeRegistry {
	return &fakeRegistry{
		owner:     owner,
		signer:    signer,
		whitelist: map[string]bool{},
	}
}

func (r *fakeRegistry) AddIdentity(ctx context.Context, actor, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != r.owner {
		return core.ErrUnauthorized
	}
	if r.whitelist[address] {
		return core.ErrAlreadyWhitelisted
	}

	r.whitelist[address] = true
	return nil
}

func (r *fakeRegistry) RemoveIdentity(ctx context.Context, actor, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != r.owner {
		return core.ErrUnauthorized
	}
	if !r.whitelist[address] {
		return core.ErrIdentityNotFound
	}

	delete(r.whitelist, address)
	return nil
}

func (r *fakeRegistry) IsWhitelisted(ctx context.Context, address string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.whitelist[address], nil
}

func (r *fakeRegistry) TransferOwnership(ctx context.Context, actor, newOwner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != r.owner {
		return core.ErrUnauthorized
	}

	r.owner = newOwner
	return nil
}

func (r *fakeRegistry) RotateSigner(ctx context.Context, actor, newSigner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != r.owner {
		return core.ErrUnauthorized
	}

	r.signer = newSigner
	return nil
}

func (r *fakeRegistry) Owner(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.owner, nil
}

func (r *fakeRegistry) TrustedSigner(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.signer, nil
}
