package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spatialbench/sbgen/internal/app"
	"github.com/spatialbench/sbgen/internal/config"
	"github.com/spatialbench/sbgen/internal/logging"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/sink"
	"github.com/spatialbench/sbgen/internal/spatial"
)

var (
	logLevel      string
	seed          int64
	spatialConfig string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "sbgen",
		Short: "Deterministic spatial benchmark data generator",
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", cfg.Seed, "Run seed")
	rootCmd.PersistentFlags().StringVar(&spatialConfig, "spatial-config", cfg.SpatialConfig, "Spatial config file path")

	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(tablesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(loadCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		scaleFactor float64
		tableNames  []string
		parts       int
		part        int
		format      string
		outputDir   string
		workers     int
		batchSize   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate benchmark tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel)
			defer logger.Sync()

			runner, err := app.NewRunner(app.Options{
				ScaleFactor:   scaleFactor,
				Seed:          seed,
				Tables:        tableNames,
				NumParts:      parts,
				Part:          part,
				Format:        format,
				OutputDir:     outputDir,
				SpatialConfig: spatialConfig,
				Workers:       workers,
				BatchSize:     batchSize,
			}, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			m, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s complete\n", m.RunID)
			fmt.Printf("Output: %s (format=%s, parts=%d)\n", outputDir, m.Format, m.Parts)
			fmt.Printf("Config hash: %s\n", m.ConfigHash)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&scaleFactor, "scale-factor", "s", 1, "Scale factor")
	cmd.Flags().StringSliceVarP(&tableNames, "tables", "t", nil, "Tables to generate (default all)")
	cmd.Flags().IntVar(&parts, "parts", 1, "Number of partitions per table")
	cmd.Flags().IntVar(&part, "part", 0, "Generate only this partition (1-based, 0 = all)")
	cmd.Flags().StringVarP(&format, "format", "f", cfg.Format, "Output format (tbl|csv|arrow|parquet)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", cfg.OutputDir, "Output directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent partition workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Rows per record batch for columnar formats")
	return cmd
}

func tablesCmd() *cobra.Command {
	var (
		scaleFactor float64
		format      string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show table row counts at a scale factor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scale.Validate(scaleFactor); err != nil {
				return err
			}

			if format == "json" {
				counts := make(map[string]int64)
				for _, t := range scale.All() {
					counts[string(t)] = scale.RowCount(t, scaleFactor)
				}
				data, _ := json.MarshalIndent(counts, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS")
			for _, t := range scale.All() {
				fmt.Fprintf(w, "%s\t%d\n", t, scale.RowCount(t, scaleFactor))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Float64VarP(&scaleFactor, "scale-factor", "s", 1, "Scale factor")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect spatial configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved spatial config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := spatial.Resolve(spatialConfig)
			if err != nil {
				return err
			}

			fmt.Printf("Source: %s\n", cfg.Source)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN")
			for _, name := range cfg.ColumnNames() {
				fmt.Fprintln(w, name)
			}
			w.Flush()
			return nil
		},
	}

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in spatial config as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(spatial.Defaults())
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.AddCommand(showCmd, defaultsCmd)
	return cmd
}

func loadCmd() *cobra.Command {
	var (
		scaleFactor float64
		tableNames  []string
		parts       int
		part        int
		batchSize   int
		kind        string
		dsn         string
		database    string
		schema      string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Generate and load tables into a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel)
			defer logger.Sync()

			var loader sink.Loader
			switch kind {
			case "postgres":
				loader = sink.NewPostgresLoader(app.WithPostgresDatabase(dsn, database), schema)
			case "sqlite":
				loader = sink.NewSQLiteLoader(dsn)
			default:
				return fmt.Errorf("unsupported target kind: %q", kind)
			}

			runner, err := app.NewRunner(app.Options{
				ScaleFactor:   scaleFactor,
				Seed:          seed,
				Tables:        tableNames,
				NumParts:      parts,
				Part:          part,
				SpatialConfig: spatialConfig,
				BatchSize:     batchSize,
			}, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			total, err := runner.Load(ctx, loader)
			if err != nil {
				return err
			}
			fmt.Printf("Loaded %d rows\n", total)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&scaleFactor, "scale-factor", "s", 1, "Scale factor")
	cmd.Flags().StringSliceVarP(&tableNames, "tables", "t", nil, "Tables to load (default all)")
	cmd.Flags().IntVar(&parts, "parts", 1, "Number of partitions per table")
	cmd.Flags().IntVar(&part, "part", 0, "Load only this partition (1-based, 0 = all)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 1000, "Rows per insert batch")
	cmd.Flags().StringVar(&kind, "kind", "", "Target kind (postgres|sqlite)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Target DSN")
	cmd.Flags().StringVar(&database, "db", "", "Database override (postgres)")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema (postgres, default public)")
	return cmd
}
