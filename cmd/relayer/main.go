package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	FlagConfig        = "config"
	DefaultConfigPath = "relayer.toml"
)

func main() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

// RootCmd assembles the relayer binary's command tree: start loads a config
// file, dials the configured attestor endpoints and waits for a shutdown
// signal.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relayer",
		Short: "IBC-Eureka event relayer",
	}

	rootCmd.AddCommand(StartCmd())

	return rootCmd
}
