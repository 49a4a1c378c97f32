package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "swe",
	Short: "swe is the command-line interface for the 100xSWE service.",
	Long: `A CLI for submitting change requests to a running 100xSWE service and
following the jobs it opens pull requests from.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "Base URL of the service API")

	if err := viper.BindPFlag("SERVER", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("SWE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// apiBase resolves the service URL with env taking precedence over the
// flag default.
func apiBase() string {
	if v := viper.GetString("SERVER"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return strings.TrimRight(serverURL, "/")
}
