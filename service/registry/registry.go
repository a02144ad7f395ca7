package registry

import (
	"context"
	"strings"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/logger"
)

const (
	ownerKey  = "oracle_owner"
	signerKey = "oracle_trusted_signer"
)

// ConfigStore persists the registry's single-writer configuration
// fields: current owner and current trusted signer.
type ConfigStore interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key string, value interface{}) error
}

type registryService struct {
	whitelists core.WhitelistStore
	properties ConfigStore
}

// New new registry service
func New(whitelists core.WhitelistStore, properties ConfigStore) core.RegistryService {
	return &registryService{
		whitelists: whitelists,
		properties: properties,
	}
}

// Bootstrap seeds the owner and trusted signer on first run. Existing
// values win so a runtime transfer is never undone by a restart.
func Bootstrap(ctx context.Context, properties ConfigStore, owner, signer string) error {
	v, err := properties.Get(ctx, ownerKey)
	if err != nil {
		return err
	}
	if v == "" {
		if err := properties.Save(ctx, ownerKey, normalize(owner)); err != nil {
			return err
		}
	}

	v, err = properties.Get(ctx, signerKey)
	if err != nil {
		return err
	}
	if v == "" {
		if err := properties.Save(ctx, signerKey, normalize(signer)); err != nil {
			return err
		}
	}

	return nil
}

func (s *registryService) AddIdentity(ctx context.Context, actor, address string) error {
	if err := s.requireOwner(ctx, actor); err != nil {
		return err
	}

	return s.whitelists.Add(ctx, normalize(address))
}

func (s *registryService) RemoveIdentity(ctx context.Context, actor, address string) error {
	if err := s.requireOwner(ctx, actor); err != nil {
		return err
	}

	return s.whitelists.Remove(ctx, normalize(address))
}

func (s *registryService) IsWhitelisted(ctx context.Context, address string) (bool, error) {
	return s.whitelists.Contains(ctx, normalize(address))
}

func (s *registryService) TransferOwnership(ctx context.Context, actor, newOwner string) error {
	if err := s.requireOwner(ctx, actor); err != nil {
		return err
	}

	if err := s.properties.Save(ctx, ownerKey, normalize(newOwner)); err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("service", "registry").
		Infoln("ownership transferred:", actor, "->", newOwner)
	return nil
}

func (s *registryService) RotateSigner(ctx context.Context, actor, newSigner string) error {
	if err := s.requireOwner(ctx, actor); err != nil {
		return err
	}

	if err := s.properties.Save(ctx, signerKey, normalize(newSigner)); err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("service", "registry").
		Infoln("trusted signer rotated:", newSigner)
	return nil
}

func (s *registryService) Owner(ctx context.Context) (string, error) {
	return s.properties.Get(ctx, ownerKey)
}

func (s *registryService) TrustedSigner(ctx context.Context) (string, error) {
	return s.properties.Get(ctx, signerKey)
}

func (s *registryService) requireOwner(ctx context.Context, actor string) error {
	owner, err := s.Owner(ctx)
	if err != nil {
		return err
	}

	if owner == "" || !strings.EqualFold(actor, owner) {
		return core.ErrUnauthorized
	}

	return nil
}

func normalize(address string) string {
	return strings.ToLower(address)
}
