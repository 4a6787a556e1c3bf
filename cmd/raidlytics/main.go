package main

import (
	"fmt"
	"os"

	"raidlytics/backend"
	"raidlytics/config"
	"raidlytics/share"
	"raidlytics/simstore"

	"github.com/spf13/cobra"
)

var (
	backendURL string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raidlytics",
		Short: "Raid log analytics from the command line",
		Long: `raidlytics reads raid logs through the analytics backend.

Commands:
  compare   Compare a player's abilities against the top parse
  audit     Print the enchant audit of a report
  sim       Show or set the sim dps stored for a report`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base url (defaults to BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(simCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	cfg  config.Config
	api  *backend.Client
	sims *simstore.Store
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}

	httpClient, err := share.NewHTTPClient(cfg.HTTPTimeout, cfg.HTTPProxyURL)
	if err != nil {
		return nil, err
	}

	kv, err := simstore.Open(cfg.Sim.Kind, cfg.Sim.Path)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:  cfg,
		api:  backend.New(cfg.BackendURL, httpClient),
		sims: simstore.New(kv),
	}, nil
}
