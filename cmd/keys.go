package cmd

import (
	"github.com/MAGNETO903/oracle-platform-hackathon/pkg/sigcheck"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "generate a secp256k1 signer keypair",
	Run: func(cmd *cobra.Command, args []string) {
		private, address, err := sigcheck.GenerateKey()
		if err != nil {
			cmd.PrintErrln("generate key error:", err)
			return
		}

		cmd.Println("secp256k1 private key:", private)
		cmd.Println("signer address:", address)
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
