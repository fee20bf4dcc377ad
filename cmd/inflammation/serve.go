package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtraver/inflammation/load"
	"github.com/mtraver/inflammation/logging"
	"github.com/mtraver/inflammation/web"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve daily statistics for the datasets in the data directory as JSON",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "Address to listen on (default from config)",
		},
	},
	Action: serve,
}

func serve(cc *cli.Context) error {
	if err := cfg.RequireDataDir(); err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if cc.IsSet("addr") {
		addr = cc.String("addr")
	}

	srv := &http.Server{
		Handler: web.NewServer(cfg.DataDir, load.NewCached(cfg.CacheTTL), cfg.Normalise.Policy()),
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cc.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("listening", "addr", ln.Addr().String(), "data_dir", cfg.DataDir)
	return runServer(ctx, srv, ln, shutdownTimeout)
}

const shutdownTimeout = 5 * time.Second

// runServer serves on ln until ctx is done, then waits up to timeout for
// in-flight requests to finish before returning.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logging.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}
