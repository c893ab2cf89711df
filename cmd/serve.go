package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheetgrid/config"
	"sheetgrid/web"

	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveJournalDB string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve worksheet conversions over HTTP",
	Long: `Start an HTTP server that converts spreadsheet files on the server's filesystem.

Endpoints:
- POST /file              path in the "FilePath" header (or ?path=, or JSON {"path": "..."})
                          200 {"resultados": [...]}, 400 missing path, 404 file not found,
                          500 any other failure with its message
- GET  /healthz           liveness probe
- GET  /api/conversions   recent conversions (only when the journal is enabled)

Set server.allowed_roots in the config to restrict which directories may be read.`,
	Example: `
  # Start server on the configured port (default 8080)
  sheetgrid serve

  # Custom port with conversion journal
  sheetgrid serve --port 9090 --journal-db ./sheetgrid.db

  # Convert a file
  curl -X POST -H "FilePath: /data/proposal.xlsx" http://localhost:8080/file
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid --port %d (expected 1..65535)", port)
		}

		converter, err := buildConverter(*cfg, converterOverrides{allowedRoots: cfg.Server.AllowedRoots})
		if err != nil {
			return err
		}

		journal, err := openJournal(*cfg, serveJournalDB)
		if err != nil {
			return err
		}
		if journal != nil {
			defer journal.Close()
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           web.NewServer(converter, journal, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port (overrides server.port)")
	serveCmd.Flags().StringVar(&serveJournalDB, "journal-db", "", "Record conversions in this SQLite journal (overrides journal.db_path and enables journaling)")
}
