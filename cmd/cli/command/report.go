package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"editorial/database"
	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
	"editorial/internal/http-api/service"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports",
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the manuscripts report as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		list, err := repository.NewManuscriptRepository(db).List(context.Background(), 0)
		if err != nil {
			return err
		}

		if out == "-" {
			return service.WriteManuscriptsCSV(cmd.OutOrStdout(), list)
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := writeReport(f, list); err != nil {
			return err
		}
		success("Wrote %d manuscripts to %s", len(list), out)
		return nil
	},
}

// writeReport writes the CSV and closes w. A failed close fails the export.
func writeReport(w io.WriteCloser, list []models.Manuscript) error {
	if err := service.WriteManuscriptsCSV(w, list); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportExportCmd)
	reportExportCmd.Flags().StringP("out", "o", service.ReportFilename, "output file, - for stdout")
}
