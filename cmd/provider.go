package cmd

import (
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	oracleservice "github.com/MAGNETO903/oracle-platform-hackathon/service/oracle"
	"github.com/MAGNETO903/oracle-platform-hackathon/service/pricefeed"
	registryservice "github.com/MAGNETO903/oracle-platform-hackathon/service/registry"
	"github.com/MAGNETO903/oracle-platform-hackathon/store/request"
	"github.com/MAGNETO903/oracle-platform-hackathon/store/validation"
	"github.com/MAGNETO903/oracle-platform-hackathon/store/whitelist"

	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideSystem() *core.System {
	return &core.System{
		Genesis:       cfg.App.Genesis,
		Location:      cfg.App.Location,
		MaxFutureSkew: time.Duration(cfg.Oracle.MaxFutureSkewSeconds) * time.Second,
		RequestTTL:    time.Duration(cfg.Oracle.RequestTTLSeconds) * time.Second,
		MaxPriceAge:   time.Duration(cfg.Oracle.MaxPriceAgeSeconds) * time.Second,
		Version:       rootCmd.Version,
	}
}

func provideRegistryConfig(db *db.DB) registryservice.ConfigStore {
	return registryservice.PropertyConfig(propertystore.New(db))
}

func provideWhitelistStore(db *db.DB) core.WhitelistStore {
	return whitelist.Cache(whitelist.New(db), time.Minute)
}

func provideRequestStore(db *db.DB) core.RequestStore {
	return request.New(db)
}

func provideValidationStore(db *db.DB) core.ValidationStore {
	return validation.New(db)
}

func provideRegistryService(whitelists core.WhitelistStore, properties registryservice.ConfigStore) core.RegistryService {
	return registryservice.New(whitelists, properties)
}

func providePriceFeedService() core.PriceFeedService {
	return pricefeed.New(&cfg)
}

func provideOracleService(
	db *db.DB,
	system *core.System,
	registrySrv core.RegistryService,
	requestStr core.RequestStore,
	validationStr core.ValidationStore,
) core.OracleService {
	return oracleservice.New(db, system, registrySrv, requestStr, validationStr, oracleservice.NewVerifier(requestStr))
}
