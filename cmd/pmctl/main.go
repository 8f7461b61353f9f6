package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pmctl",
		Short:         "Property management operations tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to config file (default $CONFIG_PATH or config/config.yaml)")

	rootCmd.AddCommand(
		MigrateCmd(),
		DropCmd(),
		SeedCmd(),
		AssignCmd(),
	)
	return rootCmd
}
