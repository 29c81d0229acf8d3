package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcsb/molpreset/pkg/serve"
	"github.com/spf13/cobra"
)

var (
	serveListen  string
	serveDB      string
	serveBaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming resolver server",
	Long: `Run molpreset as a long-lived server that accepts resolve, motif-query
and export requests and answers with JSON.

By default requests arrive on stdin and responses leave on stdout as
NDJSON; with --listen the same protocol is spoken over a websocket.
The process runs until stdin closes or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Serve websocket on this address instead of stdio (e.g. :8765)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "Store path for fetched entries (empty disables the store)")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Entry download base URL (default RCSB)")
}

func runServe(cmd *cobra.Command, args []string) error {
	r, err := newResolver(serveDB, serveBaseURL)
	if err != nil {
		return err
	}
	defer r.Close()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	srv := serve.NewServer(r.Fetcher(), cmd.InOrStdin(), cmd.OutOrStdout())

	if serveListen != "" {
		httpSrv := &http.Server{Addr: serveListen, Handler: srv.Handler()}
		go func() {
			<-ctx.Done()
			httpSrv.Close()
		}()
		if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	}

	return srv.Run(ctx)
}
