package core

import (
	"context"
	"time"
)

// Identity whitelisted identity
type Identity struct {
	ID        int64     `sql:"PRIMARY_KEY" json:"id,omitempty"`
	Address   string    `sql:"size:64;unique_index:idx_whitelist_address" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// WhitelistStore whitelist store interface
type WhitelistStore interface {
	Add(ctx context.Context, address string) error
	Remove(ctx context.Context, address string) error
	Contains(ctx context.Context, address string) (bool, error)
	List(ctx context.Context) ([]*Identity, error)
}

// RegistryService owner-gated access registry
type RegistryService interface {
	AddIdentity(ctx context.Context, actor, address string) error
	RemoveIdentity(ctx context.Context, actor, address string) error
	IsWhitelisted(ctx context.Context, address string) (bool, error)
	TransferOwnership(ctx context.Context, actor, newOwner string) error
	RotateSigner(ctx context.Context, actor, newSigner string) error
	Owner(ctx context.Context) (string, error)
	TrustedSigner(ctx context.Context) (string, error)
}
