package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/extract"
	"github.com/obi-eke/pdfgrid/internal/history"
	"github.com/obi-eke/pdfgrid/internal/locate"
	"github.com/obi-eke/pdfgrid/internal/output"
	"github.com/obi-eke/pdfgrid/internal/preview"
)

// runInteractive is the zero-argument guided flow: auto-detect a PDF in
// the input folder, extract with the auto policy, preview, then save with
// the custom naming pattern on.
func runInteractive() int {
	fmt.Println("PDF Table Extractor")
	fmt.Println("==================")

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	logger := setupLogger(cfg.Log.Level)

	fmt.Printf("Looking for PDF files in %s folder...\n", cfg.Dirs.Input)
	fmt.Printf("CSV files will be saved to %s folder...\n", cfg.Dirs.Output)

	locator := locate.NewLocator(cfg.Dirs.Input, os.Stdin, os.Stdout, logger)
	pdfPath, err := locator.Resolve("")
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No file specified. Exiting.")
		} else {
			printError("Error: %v\n", err)
		}
		return 1
	}

	ctx := context.Background()
	caps := backend.Probe(ctx, cfg.Tabula, cfg.Camelot, logger)
	orch := extract.NewOrchestrator(
		backend.NewTabula(cfg.Tabula, logger),
		backend.NewCamelot(cfg.Camelot, logger),
		caps,
		logger,
	)

	start := time.Now()
	outcome, err := orch.Extract(ctx, extract.Request{
		Request: backend.Request{Path: pdfPath, Pages: backend.AllPages()},
		Method:  constants.BackendAuto,
	})
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	if outcome.Empty() {
		fmt.Println("No tables found in the PDF.")
		return 1
	}

	p := preview.New(os.Stdin, os.Stdout)
	p.Render(outcome.Tables)
	if !p.Confirm("Save tables to CSV?") {
		fmt.Println("Operation cancelled.")
		return 0
	}

	writer := output.NewWriter(cfg.Dirs.Output, logger)
	saved, err := writer.SaveAll(outcome.Tables, output.Naming{Stem: stem(pdfPath), Custom: true}, "")
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	fmt.Printf("Saved %d CSV file(s)\n", len(saved))

	if cfg.History.Enabled {
		recordRun(ctx, cfg, logger, history.Run{
			PDFPath:  pdfPath,
			Backend:  outcome.Backend,
			Flavor:   outcome.Flavor,
			Tables:   len(outcome.Tables),
			Files:    len(saved),
			Duration: time.Since(start),
		}, outcome)
	}
	return 0
}
