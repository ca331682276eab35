package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Rana718/jsonsql/internal/server"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `
Start the jsonsql HTTP API. Mappings are read from and written to the
configured store.

Examples:
  jsonsql serve
  jsonsql serve --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		color.Cyan("🚀 jsonsql API listening on http://localhost:%d/api/v1", port)
		return server.NewServer(a.service, port, a.log).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default from config)")
}
