package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/ncnews/internal/config"
	"github.com/siahsang/ncnews/internal/database"
	"github.com/siahsang/ncnews/internal/seed"
	"github.com/spf13/cobra"
)

var (
	envFiles []string
	dbURL    string
	port     int
	debug    bool
	dataset  string
)

var rootCmd = &cobra.Command{
	Use:          "ncnews",
	Short:        "NC News API server",
	Long:         `NC News serves topics, articles, comments and users from PostgreSQL over a JSON API.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Recreate the tables and load a data set",
	Long: `Drop and recreate every table, then insert one of the bundled data sets.

Examples:
  ncnews seed                      # load the development data
  ncnews seed --dataset test       # load the small data set the tests expect`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Environment files to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL, overrides DATABASE_URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Human readable debug logging")

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on, overrides PORT")
	seedCmd.Flags().StringVar(&dataset, "dataset", "development", "Data set to load: "+strings.Join(datasetNames(), ", "))

	rootCmd.AddCommand(serveCmd, seedCmd)
}

// loadConfig applies command line flags on top of the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database.URI = dbURL
	}
	if flags.Changed("port") {
		cfg.Server.Port = port
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := configLogger(cfg.Debug)
	logger.Info("Starting application...")

	db, err := database.Open(cmd.Context(), cfg.Database)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()
	logger.Info("Database connection established successfully")

	return newApplication(cfg, logger, db).serve()
}

func runSeed(cmd *cobra.Command) error {
	load, ok := seed.Datasets[dataset]
	if !ok {
		return xerrors.Newf("unknown dataset %q, expected one of %s", dataset, strings.Join(datasetNames(), ", "))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := configLogger(cfg.Debug)

	ctx := cmd.Context()
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seed.Run(ctx, db, logger, load()); err != nil {
		return err
	}
	logger.Info("Seed complete", "dataset", dataset)
	return nil
}

func datasetNames() []string {
	names := make([]string, 0, len(seed.Datasets))
	for name := range seed.Datasets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
