// Command digisim runs circuits built from the core engine: single
// registered gates, the 8-bit ALU, or a declarative circuit file.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "digisim",
		Short: "digisim",
		Long:  `digisim runs structural digital-logic circuits: single gates, the 8-bit ALU, or a declarative circuit file.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("cycles", defaultCycles, "propagation cycle bound")
	if err := viper.BindPFlag("cycles", rootCmd.PersistentFlags().Lookup("cycles")); err != nil {
		log.Fatalf("binding --cycles flag: %v", err)
	}
	viper.SetEnvPrefix("DIGISIM")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newGateCmd())
	rootCmd.AddCommand(newALUCmd())
	rootCmd.AddCommand(newCircuitCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
