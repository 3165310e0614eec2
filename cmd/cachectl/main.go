package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var cfg globalFlags

	rootCmd := &cobra.Command{
		Use:          "cachectl",
		Short:        "Inspect a memcached cache engine",
		Long:         "Ping, read, write and drop cache entries through the cacheengine adapter",
		SilenceUsage: true,
	}
	cfg.register(rootCmd)

	rootCmd.AddCommand(
		pingCmd(&cfg),
		getCmd(&cfg),
		setCmd(&cfg),
		dropCmd(&cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
