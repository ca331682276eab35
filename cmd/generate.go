package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a SQL script from a JSON document",
	Long: `Generate INSERT statements (and optionally CREATE TABLE) for a JSON document
using a stored table mapping or a mapping file.

Examples:
  jsonsql generate --table users --data user.json
  cat users.json | jsonsql generate --table users --batch --ddl
  jsonsql generate --mapping users.yaml --data user.json --out users.sql`,
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
		includeDDL, _ := cmd.Flags().GetBool("ddl")
		batch, _ := cmd.Flags().GetBool("batch")
		dialect, _ := cmd.Flags().GetString("dialect")
		out, _ := cmd.Flags().GetString("out")
		asJSON, _ := cmd.Flags().GetBool("json")

		m, err := a.lookupMapping(ctx, table, mappingFile)
		if err != nil {
			return err
		}
		data, err := readData(dataFile)
		if err != nil {
			return err
		}

		res, err := a.service.Generate(types.GenerationRequest{
			TableName:  m.Name,
			JSONData:   data,
			IncludeDDL: includeDDL,
			BatchMode:  batch,
			Dialect:    dialect,
		}, m)
		if err != nil {
			return err
		}

		output := res.Script + "\n"
		if asJSON {
			encoded, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			output = string(encoded) + "\n"
		}

		if out == "" {
			fmt.Print(output)
		} else {
			if err := os.WriteFile(out, []byte(output), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			color.Green("✅ Wrote %d statement(s) for %s to %s", res.StatementCount, res.TableName, out)
		}

		for _, w := range res.Warnings {
			color.Yellow("⚠️  %s", w)
		}
		for _, e := range res.Errors {
			color.Red("❌ %s", e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("table", "t", "", "Table mapping name")
	generateCmd.Flags().StringP("mapping", "m", "", "Mapping file (.json, .yaml) used instead of the store")
	generateCmd.Flags().StringP("data", "d", "-", "JSON data file, - for stdin")
	generateCmd.Flags().Bool("ddl", false, "Prepend a CREATE TABLE statement")
	generateCmd.Flags().BoolP("batch", "b", false, "Treat a top-level array as one record per element")
	generateCmd.Flags().String("dialect", "", "SQL dialect label (default from config)")
	generateCmd.Flags().StringP("out", "o", "", "Write the script to a file")
	generateCmd.Flags().Bool("json", false, "Print the full generation result as JSON")
}
