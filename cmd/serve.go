package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		// Missing credentials do not stop the server; /api answers with a
		// configuration error until they are set.
		if err := cfg.LLM.CheckCredentials(); err != nil {
			log.Warn("provider credentials incomplete", zap.Error(err))
		}

		a, err := app.New(cmd.Context(), *cfg, log)
		if err != nil {
			return fmt.Errorf("build app: %w", err)
		}
		log.Info("edugen", zap.String("version", version), zap.String("provider", cfg.LLM.Provider))
		return a.Serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
