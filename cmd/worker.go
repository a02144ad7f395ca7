package cmd

import (
	"sync"

	registryservice "github.com/MAGNETO903/oracle-platform-hackathon/service/registry"
	"github.com/MAGNETO903/oracle-platform-hackathon/worker"
	"github.com/MAGNETO903/oracle-platform-hackathon/worker/expiry"
	"github.com/MAGNETO903/oracle-platform-hackathon/worker/signer"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run oracle signer and expiry workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		registryConfig := provideRegistryConfig(database)
		whitelistStore := provideWhitelistStore(database)
		requestStore := provideRequestStore(database)
		validationStore := provideValidationStore(database)

		if err := registryservice.Bootstrap(ctx, registryConfig, cfg.Oracle.Owner, cfg.Oracle.Signer); err != nil {
			logrus.WithError(err).Fatal("bootstrap registry")
		}

		registryService := provideRegistryService(whitelistStore, registryConfig)
		oracleService := provideOracleService(database, system, registryService, requestStore, validationStore)
		priceFeedService := providePriceFeedService()

		batch, _ := cmd.Flags().GetInt("batch")
		capacity, _ := cmd.Flags().GetInt64("capacity")

		workers := []worker.Worker{
			signer.New(system, oracleService, priceFeedService, cfg.Oracle.SignerKey, signer.Config{
				Batch:    batch,
				Capacity: capacity,
			}),
			expiry.New(cfg.App.Location, system, requestStore),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().Int("batch", 100, "pending requests per tick")
	workerCmd.Flags().Int64("capacity", 8, "parallel answers per tick")
}
