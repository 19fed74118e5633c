package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/obi-eke/pdfgrid/internal/common"
	"github.com/obi-eke/pdfgrid/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.Log.Level)

			store, err := history.Open(cfg.History.Path, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			tw := tablewriter.NewWriter(os.Stdout)
			tw.SetHeader([]string{"When", "PDF", "Backend", "Flavor", "Tables", "Files", "Max cols", "Took"})
			for _, r := range runs {
				tw.Append([]string{
					r.CreatedAt.Local().Format(time.DateTime),
					r.PDFPath,
					r.Backend,
					r.Flavor,
					strconv.Itoa(r.Tables),
					strconv.Itoa(r.Files),
					strconv.Itoa(r.MaxColumns),
					r.Duration.Truncate(time.Millisecond).String(),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	return cmd
}
