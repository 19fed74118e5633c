package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/extract"
	"github.com/obi-eke/pdfgrid/internal/history"
	"github.com/obi-eke/pdfgrid/internal/locate"
	"github.com/obi-eke/pdfgrid/internal/output"
	"github.com/obi-eke/pdfgrid/internal/pdfinfo"
	"github.com/obi-eke/pdfgrid/internal/preview"
	"github.com/obi-eke/pdfgrid/internal/table"
)

type rootOpts struct {
	method         string
	pages          string
	flavor         string
	columnTol      int
	rowTol         int
	tryBothFlavors bool
	preview        bool
	customNaming   bool
	customSuffix   string
	format         string
	inputDir       string
	outputDir      string
	noHistory      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "pdfgrid [pdf] [output]",
		Short: "Extract tables from PDF files to CSV",
		Long: `Extract tables from PDF files and convert them to CSV.

Two extraction backends are supported: tabula (Java) and camelot (Python).
By default both are tried in order until one finds tables.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.method, "method", constants.BackendAuto, "extraction method: tabula, camelot, or auto")
	f.StringVar(&opts.pages, "pages", "all", `pages to extract (e.g. "all", "1", "1,2,3")`)
	f.StringVar(&opts.flavor, "flavor", constants.FlavorStream, "camelot detection flavor: stream or lattice")
	f.IntVar(&opts.columnTol, "column-tol", 0, "camelot column tolerance (0=strict, higher=more lenient)")
	f.IntVar(&opts.rowTol, "row-tol", 2, "camelot row tolerance for stream flavor")
	f.BoolVar(&opts.tryBothFlavors, "try-both-flavors", false, "try both camelot flavors and use the one with more columns")
	f.BoolVar(&opts.preview, "preview", false, "preview extracted tables before saving")
	f.BoolVar(&opts.customNaming, "custom-naming", false, "use custom naming pattern: <stem>--<suffix>_table<number>")
	f.StringVar(&opts.customSuffix, "custom-suffix", output.DefaultCustomSuffix, "suffix for the custom naming pattern")
	f.StringVar(&opts.format, "format", "csv", "output format: csv or xlsx")
	f.StringVar(&opts.inputDir, "input-dir", "", "override the PDF input folder")
	f.StringVar(&opts.outputDir, "output-dir", "", "override the CSV output folder")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history database")

	cmd.AddCommand(newHistoryCmd())
	return cmd
}

func runExtract(cmd *cobra.Command, opts *rootOpts, args []string) error {
	if !slices.Contains(constants.Methods, opts.method) {
		return fmt.Errorf("%w: --method must be one of %s", common.ErrInvalidInput, strings.Join(constants.Methods, ", "))
	}
	if !slices.Contains(constants.Flavors, opts.flavor) {
		return fmt.Errorf("%w: --flavor must be one of %s", common.ErrInvalidInput, strings.Join(constants.Flavors, ", "))
	}
	if opts.format != "csv" && opts.format != "xlsx" {
		return fmt.Errorf("%w: --format must be csv or xlsx", common.ErrInvalidInput)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if opts.inputDir != "" {
		cfg.Dirs.Input = opts.inputDir
	}
	if opts.outputDir != "" {
		cfg.Dirs.Output = opts.outputDir
	}
	logger := setupLogger(cfg.Log.Level)

	var pdfArg, outArg string
	if len(args) > 0 {
		pdfArg = args[0]
	}
	if len(args) > 1 {
		outArg = args[1]
	}
	// Historical quirk: the second positional argument doubles as a pages
	// parameter when it can only be a comma-separated page list.
	if outArg != "" && opts.pages == "all" && backend.LooksLikePageList(outArg) {
		fmt.Printf("Interpreting %q as pages parameter\n", outArg)
		opts.pages = outArg
		outArg = ""
	}

	pages, err := backend.ParsePages(opts.pages)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	ctx := context.Background()
	locator := locate.NewLocator(cfg.Dirs.Input, os.Stdin, os.Stdout, logger)
	pdfPath, err := locator.Resolve(pdfArg)
	if err != nil {
		return err
	}

	if n, perr := pdfinfo.PageCount(pdfPath); perr != nil {
		logger.Warn("pdf preflight failed, backends may still cope", "path", pdfPath, "error", perr)
	} else if err := pdfinfo.CheckSelection(pages, n); err != nil {
		return err
	}

	req := extract.Request{
		Request: backend.Request{
			Path:   pdfPath,
			Pages:  pages,
			Flavor: opts.flavor,
		},
		Method:         opts.method,
		TryBothFlavors: opts.tryBothFlavors,
	}
	if cmd.Flags().Changed("row-tol") {
		req.RowTol = &opts.rowTol
	}
	if cmd.Flags().Changed("column-tol") {
		req.ColTol = &opts.columnTol
	}

	caps := backend.Probe(ctx, cfg.Tabula, cfg.Camelot, logger)
	orch := extract.NewOrchestrator(
		backend.NewTabula(cfg.Tabula, logger),
		backend.NewCamelot(cfg.Camelot, logger),
		caps,
		logger,
	)

	start := time.Now()
	outcome, err := orch.Extract(ctx, req)
	if err != nil {
		return err
	}
	if outcome.Empty() {
		return fmt.Errorf("%w in %s", common.ErrNoTables, pdfPath)
	}

	if opts.preview {
		p := preview.New(os.Stdin, os.Stdout)
		p.Render(outcome.Tables)
		if !p.Confirm("Proceed with saving?") {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	naming := output.Naming{
		Stem:   stem(pdfPath),
		Custom: opts.customNaming,
		Suffix: opts.customSuffix,
	}
	writer := output.NewWriter(cfg.Dirs.Output, logger)

	var saved []string
	if opts.format == "xlsx" {
		saved, err = writer.SaveWorkbook(outcome.Tables, naming)
	} else {
		saved, err = writer.SaveAll(outcome.Tables, naming, outArg)
	}
	if err != nil {
		return err
	}
	for _, path := range saved {
		fmt.Printf("Table saved to: %s\n", path)
	}
	fmt.Printf("\nSuccessfully extracted %d table(s) to %d file(s)\n", len(outcome.Tables), len(saved))

	if cfg.History.Enabled && !opts.noHistory {
		recordRun(ctx, cfg, logger, history.Run{
			PDFPath:  pdfPath,
			Backend:  outcome.Backend,
			Flavor:   outcome.Flavor,
			Tables:   len(outcome.Tables),
			Files:    len(saved),
			Duration: time.Since(start),
		}, outcome)
	}
	return nil
}

func recordRun(ctx context.Context, cfg *common.Config, logger *slog.Logger, run history.Run, outcome extract.Outcome) {
	store, err := history.Open(cfg.History.Path, logger)
	if err != nil {
		logger.Warn("history disabled for this run", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run.MaxColumns = table.MaxColumns(outcome.Tables)
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
