package cmd

import (
	"fmt"
	"log"

	"tunevault/config"
	"tunevault/db"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and seed default data",
	Long:  `Creates all tables if missing and inserts the default accounts, genres and artists. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseDB()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := db.SeedDefaults(); err != nil {
			log.Fatalf("Failed to seed defaults: %v", err)
		}

		fmt.Println("Database ready.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
