package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate skill catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a skill catalog document",
	Long:  "Checks a catalog YAML document against the catalog schema and compiles its patterns. Without --file the embedded catalog is checked.",
	RunE:  runCatalogValidate,
}

var catalogFile string

func init() {
	catalogValidateCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Path to catalog YAML file")
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return err
	}

	source := catalogFile
	if source == "" {
		source = "embedded catalog"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: version %s, %d categories, %d patterns\n",
		source, cat.Version(), len(cat.Categories()), len(cat.Patterns()))
	return nil
}
