package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"horizon-cli/internal/relay"
	"horizon-cli/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(a *App) *cobra.Command {
	var addr string
	var demo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and live websocket stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if demo {
				eng.EnsureDemoContent()
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			var assistant web.Assistant
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				assistant = relay.New(relay.Config{
					APIKey:  key,
					BaseURL: os.Getenv("HORIZON_OPENAI_BASE_URL"),
					Model:   os.Getenv("HORIZON_MODEL"),
					Logger:  log,
				})
			} else {
				log.Info("OPENAI_API_KEY not set; /api/assist disabled")
			}

			srv := web.NewServer(web.ServerConfig{
				App:       eng,
				Assistant: assistant,
				Logger:    log,
			})

			log.Info("serving", "addr", addr, "dir", a.Dir, "workspace", a.Workspace)
			httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("HORIZON_ADDR", "127.0.0.1:8787"), "Listen address")
	cmd.Flags().BoolVar(&demo, "demo", false, "Seed demo content when the workspace is empty")
	return cmd
}
