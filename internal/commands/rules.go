package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/branchreport/internal/report"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the effective category rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			ec, err := cfg.Engine()
			if err != nil {
				return err
			}
			if _, err := report.New(ec); err != nil {
				return fmt.Errorf("configuring report: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFIELD\tKEYWORD\tTITLE")
			for _, r := range cfg.Rules {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Field, r.Keyword, r.Title)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nsales basis: %s\ntax divisor: %s\ndecimals: %d\n",
				ec.SalesBasis, ec.Divisor, ec.Decimals)
			return nil
		},
	}
}
