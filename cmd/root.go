package cmd

import (
	"errors"
	"fmt"

	"github.com/Rana718/jsonsql/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errInvalidDocument = errors.New("JSON does not conform to table mapping")

var (
	cfgFile  string
	logLevel string
	Version  = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "jsonsql",
	Short: "Generate SQL INSERT and CREATE TABLE statements from JSON documents",
	Long: `
jsonsql turns JSON documents into SQL scripts using table mappings that
describe, per column, the SQL type and the JSON path its value comes from.

Mappings are stored as JSON or YAML files, in a SQL database (SQLite,
PostgreSQL or MySQL) or in memory, and can be managed from the CLI or
through the HTTP API started by 'jsonsql serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("jsonsql version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("jsonsql.config")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
		}
	}
}
