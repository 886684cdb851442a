package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cobiadigital/school-pay-visualization/internal/adapters/render"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
)

func renderCmd(flags *sourceFlags) *cobra.Command {
	var (
		out    string
		format string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every dashboard chart to image files",
	}
	selection := selectionFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "charts", "output directory")
	cmd.Flags().StringVar(&format, "format", render.FormatPNG, "png or svg")
	cmd.Flags().IntVar(&width, "width", render.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", render.DefaultHeight, "image height in pixels")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if format != render.FormatPNG && format != render.FormatSVG {
			return fmt.Errorf("%w: %s", render.ErrUnsupportedFormat, format)
		}
		cfg, err := loadConfig(cmd, flags)
		if err != nil {
			return err
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
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}

		w := cmd.OutOrStdout()
		for _, id := range dashboard.ChartIDs() {
			path := filepath.Join(out, id+render.Extension(format))
			err := writeChart(path, view, id, format, width, height)
			switch {
			case errors.Is(err, render.ErrEmptyChart):
				fmt.Fprintf(w, "%s %s (no data)\n", color.New(color.FgYellow).Sprint("SKIP   "), path)
			case err != nil:
				return err
			default:
				fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen).Sprint("WROTE  "), path)
			}
		}
		return nil
	}
	return cmd
}

func writeChart(path string, view dashboard.View, id, format string, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = render.ViewChart(f, view, id, render.WithFormat(format), render.WithSize(width, height))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}
