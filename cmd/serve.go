package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/feed"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upcoming-builds feed over HTTP and websocket",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	c, err := buildContainer()
	if err != nil {
		return err
	}
	cfg := c.Config()

	srv := c.Feed()
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
		srv = feed.NewServer(addr, cfg.Server.Refresh(), c.Display(), c.Logger())
	}

	fmt.Printf("%s Serving upcoming builds on http://%s (jobs: %s)\n", logo, addr, c.Display().JobsPath())
	fmt.Println("  GET /api/schedule   JSON snapshot")
	fmt.Println("  GET /ws             websocket feed")

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
