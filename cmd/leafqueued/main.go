// Command leafqueued runs the leaf-queue allocation core as a
// standalone process: a config-driven HTTP accessor surface (serve)
// and a synthetic-cluster exerciser (simulate), following the
// teacher's cmd/node rootCmd/PersistentFlags shape.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "leafqueued",
		Short:   "Leaf-queue allocation core for a capacity-based cluster scheduler",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

