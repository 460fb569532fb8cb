package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"lager/internal/config"
	"lager/internal/importer"
	"lager/internal/inspect"
	"lager/internal/output"
	"lager/internal/store"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	driver     string
	dbPath     string
	dsn        string
	format     string
	timeout    int

	cfg config.Config
}

// info writes progress lines; in JSON mode they go to stderr so stdout stays parseable.
func (a *app) info() io.Writer {
	if f, err := output.ParseFormat(a.cfg.Output.Format); err == nil && f == output.FormatJSON {
		return a.stderr
	}
	return a.stdout
}

func (a *app) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(a.timeout)*time.Second)
}

func (a *app) load(cmd *cobra.Command) error {
	if a.timeout <= 0 {
		return fmt.Errorf("--timeout must be a positive number of seconds, got %d", a.timeout)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Database.Driver = a.driver
	}
	if flags.Changed("db") {
		cfg.Database.Path = a.dbPath
	}
	if flags.Changed("dsn") {
		cfg.Database.DSN = a.dsn
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) write(s string) error {
	_, err := fmt.Fprint(a.stdout, s)
	return err
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "lager",
		Short:         "Inventory database inspection and bulk item import",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Path to a TOML config file (default: ./"+config.DefaultFile+" if present)")
	pf.StringVar(&a.driver, "driver", "", "Database driver: sqlite or mysql")
	pf.StringVar(&a.dbPath, "db", "", "Path to the SQLite database file")
	pf.StringVar(&a.dsn, "dsn", "", "MySQL connection string")
	pf.StringVarP(&a.format, "format", "f", "", "Output format: human or json")
	pf.IntVar(&a.timeout, "timeout", 300, "Timeout in seconds for the whole operation")

	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newLookupCmd(a))

	return rootCmd
}

func newInspectCmd(a *app) *cobra.Command {
	var sampleLimit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report tables, item layout, counts, settings and department mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("sample-limit") {
				a.cfg.Inspect.SampleLimit = sampleLimit
			}

			ctx, cancel := a.context()
			defer cancel()

			inspector := inspect.NewInspector(inspect.Options{
				Location:    a.cfg.Location(),
				SampleLimit: a.cfg.Inspect.SampleLimit,
				Out:         a.info(),
			})
			report, err := inspector.Run(ctx)
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatReport(report)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return a.write(formatted)
		},
	}

	cmd.Flags().IntVarP(&sampleLimit, "sample-limit", "n", 0, "Number of sample items to show, at most 10")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool
	var sampleLimit int

	cmd := &cobra.Command{
		Use:   "import [items.txt]",
		Short: "Upsert barcode/name pairs from a text file into the items table",
		Long: `Import reads one item per line in the form "<barcode> <name>". Everything after
the first space is the name. Blank lines and lines without a space are skipped.
All items are written in one transaction; an existing barcode has its name replaced.

Examples:
  lager import
  lager import items_import.txt --db data/inventory.db
  lager import items_import.txt --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.cfg.Import.Source
			if len(args) == 1 {
				source = args[0]
			}
			limit := a.cfg.Inspect.SampleLimit
			if cmd.Flags().Changed("sample-limit") {
				limit = sampleLimit
			}

			ctx, cancel := a.context()
			defer cancel()

			imp := importer.NewImporter(importer.Options{
				Source:      source,
				Location:    a.cfg.Location(),
				SampleLimit: limit,
				DryRun:      dryRun,
				Out:         a.info(),
			})
			res, err := imp.Run(ctx)
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatImport(res)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return a.write(formatted)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Parse the file and check the database without writing")
	cmd.Flags().IntVarP(&sampleLimit, "sample-limit", "n", 0, "Number of sample items to show, at most 10")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the inventory tables and seed default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context()
			defer cancel()

			loc := a.cfg.Location()
			loc.Create = true

			s, err := store.Open(ctx, loc)
			if err != nil {
				return err
			}
			defer func(s *store.Store) {
				if err := s.Close(); err != nil {
					_, _ = fmt.Fprintf(a.stderr, "Failed to close database connection: %v\n", err)
				}
			}(s)

			res, err := s.EnsureSchema(ctx)
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatBootstrap(store.Describe(loc), res)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return a.write(formatted)
		},
	}
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <barcode>...",
		Short: "Show item name and department for barcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context()
			defer cancel()

			lookups, err := inspect.LookupBarcodes(ctx, a.cfg.Location(), args)
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatLookups(lookups)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return a.write(formatted)
		},
	}
}
