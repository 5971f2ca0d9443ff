package cmd

import (
	"log"

	"github.com/GokhanGuclu/zoko/zoko"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize (and migrate) the database",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if cfg.DatabaseType == "" {
			log.Fatal("Environment variable ZOKO_DATABASE_TYPE not set (must be one of: sqlite, postgres)")
		}
		if cfg.Database == "" {
			log.Fatal(
				"Environment variable ZOKO_DATABASE not set (must be a valid " +
					"database connection string or sqlite file path)",
			)
		}
		db, err := zoko.CreateDB(ctx, cfg.DatabaseType, cfg.Database)
		if err != nil {
			log.Fatalf("Error creating database: %v", err)
		}
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
		cmd.Println("Database initialized.")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
