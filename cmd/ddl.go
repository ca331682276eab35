package cmd

import (
	"fmt"

	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/spf13/cobra"
)

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print CREATE TABLE or DROP TABLE for a table mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		table, _ := cmd.Flags().GetString("table")
		mappingFile, _ := cmd.Flags().GetString("mapping")
		drop, _ := cmd.Flags().GetBool("drop")
		ifExists, _ := cmd.Flags().GetBool("if-exists")

		m, err := a.lookupMapping(ctx, table, mappingFile)
		if err != nil {
			return err
		}

		var sql string
		if drop {
			sql, err = sqlgen.GenerateDropTable(m, ifExists)
		} else {
			sql, err = sqlgen.GenerateCreateTable(m)
		}
		if err != nil {
			return err
		}

		fmt.Println(sql)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ddlCmd)
	ddlCmd.Flags().StringP("table", "t", "", "Table mapping name")
	ddlCmd.Flags().StringP("mapping", "m", "", "Mapping file (.json, .yaml) used instead of the store")
	ddlCmd.Flags().Bool("drop", false, "Print DROP TABLE instead of CREATE TABLE")
	ddlCmd.Flags().Bool("if-exists", false, "Add IF EXISTS to DROP TABLE")
}
