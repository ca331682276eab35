package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Manage stored table mappings",
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored table mappings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		mappings, err := a.service.ListMappings(ctx)
		if err != nil {
			return err
		}
		if len(mappings) == 0 {
			color.Yellow("No table mappings found")
			return nil
		}

		color.Cyan("📋 %d table mapping(s):", len(mappings))
		for _, m := range mappings {
			name := m.Name
			if m.Schema != "" {
				name = m.Schema + "." + m.Name
			}
			fmt.Printf("   %-30s %d column(s)\n", name, len(m.Columns))
		}
		return nil
	},
}

var tablesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a table mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.service.GetMapping(ctx, args[0])
		if err != nil {
			return err
		}

		format := mapping.FormatJSON
		if f, _ := cmd.Flags().GetString("format"); strings.EqualFold(f, "yaml") {
			format = mapping.FormatYAML
		}
		data, err := mapping.Encode(m, format)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var tablesPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Save a mapping file (.json, .yaml) to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := mapping.LoadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := a.service.SaveMapping(ctx, m); err != nil {
			return err
		}

		color.Green("✅ Saved table mapping %s", m.Name)
		return nil
	},
}

var tablesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored table mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		force, _ := cmd.Flags().GetBool("force")
		input := &utils.InputUtils{In: os.Stdin, Out: os.Stdout}
		if !input.AskConfirmation(fmt.Sprintf("Delete table mapping %s?", args[0]), force) {
			color.Yellow("Aborted")
			return nil
		}

		if err := a.service.DeleteMapping(ctx, args[0]); err != nil {
			return err
		}

		color.Green("🗑️  Deleted table mapping %s", args[0])
		return nil
	},
}

var tablesImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Save every mapping file under a directory to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := (&utils.FileUtils{}).FindMappingFiles(args[0])
		if err != nil {
			return err
		}

		imported := 0
		for _, file := range files {
			m, err := mapping.LoadFile(file)
			if err == nil {
				_, err = a.service.SaveMapping(ctx, m)
			}
			if err != nil {
				color.Red("❌ %s: %v", file, err)
				continue
			}
			fmt.Printf("   %s -> %s\n", file, m.Name)
			imported++
		}

		color.Green("✅ Imported %d of %d mapping file(s)", imported, len(files))
		if imported < len(files) {
			return fmt.Errorf("%d mapping file(s) failed to import", len(files)-imported)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesListCmd, tablesGetCmd, tablesPutCmd, tablesDeleteCmd, tablesImportCmd)
	tablesDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
	tablesGetCmd.Flags().String("format", "json", "Output format (json or yaml)")
}
