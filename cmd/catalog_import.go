package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"phuler.GO/config"
	catalogService "phuler.GO/service/catalog"
)

var importBatchSize int

var catalogImportCmd = &cobra.Command{
	Use:   "catalog:import [file.json]",
	Short: "Import products from a JSON file into the catalog database",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("read %s: %v", args[0], err)
		}
		var rows []map[string]interface{}
		if err := json.Unmarshal(data, &rows); err != nil {
			log.Fatalf("parse %s: %v", args[0], err)
		}

		db, err := config.NewDB()
		if err != nil {
			log.Fatalf("db: %v", err)
		}

		res, err := catalogService.ImportJSON(db, rows, importBatchSize)
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Printf("imported %d, skipped %d of %d rows in %s\n",
			res.Imported, res.Skipped, res.TotalRows, res.TotalTime)
		for _, w := range res.Warnings {
			fmt.Println("  warning:", w)
		}
	},
}

func init() {
	catalogImportCmd.Flags().IntVar(&importBatchSize, "batch-size", 100, "upsert batch size")
	rootCmd.AddCommand(catalogImportCmd)
}
