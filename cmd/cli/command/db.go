package command

import (
	"context"

	"editorial/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		success("Schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, publications, news and manuscripts into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		seeded, err := database.Seed(context.Background(), db)
		if err != nil {
			return err
		}
		if !seeded {
			color.Yellow("Users already exist, demo data was not loaded")
			return nil
		}
		success("Demo data loaded")
		color.Cyan("  admin@editorial.test / adminpass")
		color.Cyan("  editor@editorial.test / editorpass")
		color.Cyan("  reviewer@editorial.test / reviewpass")
		color.Cyan("  author@editorial.test / authorpass")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
