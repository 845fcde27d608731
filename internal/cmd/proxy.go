package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aiutodesk/desk/internal/config"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/proxy"
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the local development proxy",
	Long: `Run the local development proxy.

The proxy forwards every request to the hosted backend and adds permissive
CORS headers, so browser frontends served from another origin can reach
the API during development. Point the client at it with --dev.

Examples:
  desk proxy
  desk proxy --listen :3001 --upstream https://aiutodesk-backend.onrender.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		upstream, _ := cmd.Flags().GetString("upstream")

		server, err := proxy.NewServer(proxy.Config{
			Address:  listen,
			Upstream: upstream,
			Logger:   log.DefaultLogger(),
		})
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		fmt.Printf("Proxying %s -> %s\n", listen, upstream)

		select {
		case <-cmd.Context().Done():
			// Drain with a fresh context; the command's one is already done.
			if err := server.Shutdown(context.Background()); err != nil {
				return err
			}
			return cmd.Context().Err()
		case err := <-errCh:
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		}
	},
}

func init() {
	proxyCmd.Flags().String("listen", ":3001", "Listen address")
	proxyCmd.Flags().String("upstream", config.DefaultBaseURL, "Backend base URL to forward to")

	rootCmd.AddCommand(proxyCmd)
}
