package cmd

import (
	"github.com/spf13/cobra"
)

// whitelist administration, runs with the configured owner identity
var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "manage the request whitelist",
}

var whitelistAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "whitelist an address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		registryService := provideRegistryService(provideWhitelistStore(database), provideRegistryConfig(database))

		if err := registryService.AddIdentity(ctx, cfg.Oracle.Owner, args[0]); err != nil {
			cmd.PrintErrln("add to whitelist error:", err)
			return
		}

		cmd.Println("whitelisted:", args[0])
	},
}

var whitelistRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "remove an address from the whitelist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		registryService := provideRegistryService(provideWhitelistStore(database), provideRegistryConfig(database))

		if err := registryService.RemoveIdentity(ctx, cfg.Oracle.Owner, args[0]); err != nil {
			cmd.PrintErrln("remove from whitelist error:", err)
			return
		}

		cmd.Println("removed:", args[0])
	},
}

var whitelistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "list whitelisted addresses",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		identities, err := provideWhitelistStore(database).List(ctx)
		if err != nil {
			cmd.PrintErrln("list whitelist error:", err)
			return
		}

		for _, identity := range identities {
			cmd.Println(identity.Address)
		}
	},
}

func init() {
	rootCmd.AddCommand(whitelistCmd)

	whitelistCmd.AddCommand(whitelistAddCmd)
	whitelistCmd.AddCommand(whitelistRemoveCmd)
	whitelistCmd.AddCommand(whitelistShowCmd)
}
