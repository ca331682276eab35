package cmd

import (
	"github.com/Rana718/jsonsql/internal/conformance"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a JSON document against a table mapping",
	Long: `Report required columns that have no value and values that do not look
like their column's SQL type. Exits with an error when the document is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		table, _ := cmd.Flags().GetString("table")
		mappingFile, _ := cmd.Flags().GetString("mapping")
		dataFile, _ := cmd.Flags().GetString("data")

		m, err := a.lookupMapping(ctx, table, mappingFile)
		if err != nil {
			return err
		}
		data, err := readData(dataFile)
		if err != nil {
			return err
		}

		report, err := conformance.Check(m, data)
		if err != nil {
			return err
		}

		for _, w := range report.Warnings {
			color.Yellow("⚠️  %s", w)
		}
		for _, e := range report.Errors {
			color.Red("❌ %s", e)
		}
		if !report.Valid {
			return errInvalidDocument
		}

		color.Green("✅ JSON conforms to table mapping %s", m.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("table", "t", "", "Table mapping name")
	validateCmd.Flags().StringP("mapping", "m", "", "Mapping file (.json, .yaml) used instead of the store")
	validateCmd.Flags().StringP("data", "d", "-", "JSON data file, - for stdin")
}
