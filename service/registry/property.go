package registry

import (
	"context"

	"github.com/fox-one/pkg/property"
)

type propertyConfigStore struct {
	properties property.Store
}

// PropertyConfig backs the registry configuration with a property store.
func PropertyConfig(properties property.Store) ConfigStore {
	return &propertyConfigStore{properties: properties}
}

func (s *propertyConfigStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.properties.Get(ctx, key)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

func (s *propertyConfigStore) Save(ctx context.Context, key string, value interface{}) error {
	return s.properties.Save(ctx, key, value)
}
