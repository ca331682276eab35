package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/jsonsql/internal/config"
	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	storeFlag      string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new jsonsql project",
	Long:  `Write a jsonsql.config.json, a .env for SQL-backed stores and a sample table mapping.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		storeType := template.File
		flagCount := 0

		if sqliteFlag {
			storeType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			storeType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			storeType = template.MySQL
			flagCount++
		}

		if storeFlag != "" {
			storeType = template.ValidateStoreType(storeFlag)
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one store type (--store, --sqlite, --postgresql, or --mysql)")
		}

		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(".", template.NewProjectTemplate(storeType), force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Store mappings in a SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Store mappings in PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Store mappings in MySQL")
	initCmd.Flags().StringVar(&storeFlag, "store", "", "Store type (file, sqlite, postgresql, mysql)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

func initializeProject(root string, tmpl *template.ProjectTemplate, force bool) error {
	configPath := filepath.Join(root, config.FileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(configPath, []byte(tmpl.GetConfig()), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", config.FileName, err)
	}

	samplePath := filepath.Join(root, template.DefinitionsDir, "users.json")
	sampleCreated := false
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		sample, err := mapping.Decode([]byte(tmpl.GetSampleMapping()), mapping.FormatJSON)
		if err != nil {
			return err
		}
		if err := mapping.SaveFile(samplePath, sample); err != nil {
			return err
		}
		sampleCreated = true
	}

	if env := tmpl.GetEnvTemplate(); env != "" {
		if err := handleEnvFile(filepath.Join(root, ".env"), env); err != nil {
			return fmt.Errorf("failed to handle .env file: %w", err)
		}
	}

	color.Green("✅ Initialized jsonsql project with %s store", tmpl.StoreType)
	fmt.Println()
	fmt.Println("📝 Files created:")
	fmt.Printf("   %s\n", config.FileName)
	if sampleCreated {
		fmt.Printf("   %s/users.json\n", template.DefinitionsDir)
	} else {
		fmt.Printf("ℹ️  Skipped %s/users.json (already exists)\n", template.DefinitionsDir)
	}
	fmt.Println()
	fmt.Println("🚀 Next steps:")
	fmt.Println(`   echo '{"user":{"name":"ada"}}' | jsonsql generate --table users --ddl`)
	fmt.Println("   jsonsql serve")

	return nil
}

// handleEnvFile creates .env or appends the database URL when missing.
func handleEnvFile(envPath, defaultEnvContent string) error {
	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "JSONSQL_DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by jsonsql\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
