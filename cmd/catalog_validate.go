package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"phuler.GO/catalog"
)

var catalogValidateCmd = &cobra.Command{
	Use:   "catalog:validate [file.json]",
	Short: "Validate catalog records (embedded seed when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		var products []catalog.Product
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				log.Fatalf("read %s: %v", args[0], err)
			}
			if err := json.Unmarshal(data, &products); err != nil {
				log.Fatalf("parse %s: %v", args[0], err)
			}
		} else {
			seed, err := catalog.LoadSeed()
			if err != nil {
				log.Fatalf("seed: %v", err)
			}
			products = seed.Products()
		}

		invalid := 0
		for i := range products {
			if err := products[i].Validate(); err != nil {
				invalid++
				fmt.Println("invalid:", err)
			}
		}
		fmt.Printf("%d products checked, %d invalid\n", len(products), invalid)
		if invalid > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogValidateCmd)
}
