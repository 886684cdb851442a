package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cobiadigital/school-pay-visualization/internal/adapters/source"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/sampledata"
)

// Default sample file names, matching the configured source paths.
const (
	genericFile  = "teacher_salary_data.csv"
	detailedFile = "alabama_teacher_salaries.csv"
)

func generateCmd() *cobra.Command {
	var (
		out       string
		seed      uint64
		districts int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write sample generic and detailed source CSVs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}

			generic := sampledata.Generic(
				sampledata.WithSeed(seed),
				sampledata.WithDistrictsPerState(districts),
			)
			files := []struct {
				name       string
				records    []model.DistrictRecord
				withSource bool
			}{
				{genericFile, generic, false},
				{detailedFile, sampledata.Detailed(), true},
			}

			for _, f := range files {
				path := filepath.Join(out, f.name)
				if err := writeRecords(path, f.records, f.withSource); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d rows)\n",
					color.New(color.FgGreen).Sprint("WROTE  "), path, len(f.records))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().Uint64Var(&seed, "seed", sampledata.DefaultSeed, "random seed for the generic data")
	cmd.Flags().IntVar(&districts, "districts", sampledata.DefaultDistrictsPerState, "districts per state")
	return cmd
}

func writeRecords(path string, records []model.DistrictRecord, withSource bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := source.WriteCSV(f, records, withSource); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
