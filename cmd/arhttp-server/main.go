// Command arhttp-server serves asset lookups from a YAML or JSON map file.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arloliu/arhttp/lookupserver"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serverConfig holds the flags of the server command.
type serverConfig struct {
	addr    string
	mapFile string
	prefix  string
	debug   bool
}

func main() {
	if err := newServerCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newServerCmd() *cobra.Command {
	cfg := &serverConfig{}

	cmd := &cobra.Command{
		Use:   "arhttp-server --map FILE",
		Short: "Serve asset lookups for arhttp resolvers",
		Long: `arhttp-server answers GET /{asset} with the location mapped to the asset
in the map file, or 404 when the asset is unknown.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.addr, "addr", "localhost:8000", "listen address")
	cmd.Flags().StringVar(&cfg.mapFile, "map", "", "asset map file (YAML or JSON)")
	cmd.Flags().StringVar(&cfg.prefix, "prefix", "", "URL path prefix stripped before the lookup")
	cmd.Flags().BoolVar(&cfg.debug, "debug", false, "log every lookup")
	_ = cmd.MarkFlagRequired("map")

	return cmd
}

func runServer(ctx context.Context, cfg *serverConfig) error {
	logger, err := newLogger(cfg.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	assets, err := lookupserver.LoadMap(afero.NewOsFs(), cfg.mapFile)
	if err != nil {
		return err
	}

	handler := lookupserver.NewHandler(assets,
		lookupserver.WithPrefix(cfg.prefix),
		lookupserver.WithLogger(logger))

	ln, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("serving asset lookups",
		zap.String("addr", ln.Addr().String()),
		zap.String("map", cfg.mapFile),
		zap.Int("assets", len(assets)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")

	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
