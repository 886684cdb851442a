package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
)

func summaryCmd(flags *sourceFlags) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline metrics and the district table",
	}
	selection := selectionFlags(cmd)
	cmd.Flags().IntVar(&rows, "rows", 0, "table rows to print (0 uses table_row_limit)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, flags)
		if err != nil {
			return err
		}
		if rows > 0 {
			cfg.TableRowLimit = rows
		}

		svc := newService(cfg)
		if err := svc.Start(cmd.Context()); err != nil {
			return err
		}
		defer svc.Stop()

		view, err := svc.Dashboard(cmd.Context(), selection())
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), view)
		return nil
	}
	return cmd
}

func printSummary(w io.Writer, view dashboard.View) {
	bold := color.New(color.Bold)
	label := color.New(color.FgCyan)

	scope := view.Selection.Region
	if len(view.Selection.Jurisdictions) > 0 {
		scope += " / " + strings.Join(view.Selection.Jurisdictions, ", ")
	}
	fmt.Fprintf(w, "%s %s (%d districts)\n\n", bold.Sprint("Selection:"), scope, view.Records)

	for _, m := range view.Metrics {
		value := color.New(color.FgGreen).Sprint(m.Value)
		if !m.Available {
			value = color.New(color.FgYellow).Sprint(m.Value)
		}
		fmt.Fprintf(w, "  %-22s %s\n", label.Sprint(m.Label), value)
	}
	fmt.Fprintln(w)

	if view.Empty {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No districts match the selection."))
		return
	}
	if !view.DetailedAvailable {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("Detailed district data unavailable; showing generic data only."))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, bold.Sprint(view.Table.Title))
	labels := make([]string, 0, len(view.Table.Columns))
	for _, c := range view.Table.Columns {
		labels = append(labels, c.Label)
	}
	fmt.Fprintln(w, strings.Join(labels, " | "))
	for _, row := range view.Table.Rows {
		fmt.Fprintln(w, strings.Join(row, " | "))
	}
	if view.Table.Truncated {
		fmt.Fprintf(w, "... %d of %d rows shown\n", len(view.Table.Rows), view.Table.TotalRows)
	}
}
