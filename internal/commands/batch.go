package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/branchreport/internal/export"
)

func newBatchCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Report every export in <directory>/import, one report per file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if !cmd.Flags().Changed("config") {
				opts.configPath = filepath.Join(absDir, opts.configPath)
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			svc, err := opts.newService(cfg)
			if err != nil {
				return err
			}
			w, err := export.ForFormat(cfg.Output.Format, cfg.Output.RightToLeft)
			if err != nil {
				return err
			}

			results, err := svc.Batch(absDir, w)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", filepath.Base(r.Source), r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s -> %s\n", filepath.Base(r.Source), r.Output)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d reports failed", failed, len(results))
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exports to report.")
			}
			return nil
		},
	}
	return cmd
}
