package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/branchreport/internal/export"
	"github.com/cleared-dev/branchreport/internal/model"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var (
		output   string
		decimals int
		divisor  string
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Build a daily report from one branch export (.xlsx or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("decimals") {
				cfg.Decimals = decimals
			}
			if cmd.Flags().Changed("divisor") {
				cfg.TaxDivisor = divisor
			}

			svc, err := opts.newService(cfg)
			if err != nil {
				return err
			}

			out, err := svc.Generate(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return printTable(cmd.OutOrStdout(), out.Report)
			}

			w, err := export.ForFile(output, cfg.Output.RightToLeft)
			if err != nil {
				return err
			}
			if err := svc.Write(out.Report, w, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d dates, %d rows dropped, %d skipped)\n",
				output, len(out.Report.Days()), out.Report.Dropped, len(out.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this .xlsx or .csv file instead of stdout")
	cmd.Flags().IntVar(&decimals, "decimals", 2, "decimal places in the report (0 or 2)")
	cmd.Flags().StringVar(&divisor, "divisor", "", "tax divisor applied to the sales basis (default from config)")

	return cmd
}

func printTable(w io.Writer, rep *model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, line := range rep.Table() {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
