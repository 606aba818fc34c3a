package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/orgchart/internal/audit"
	"github.com/ziadkadry99/orgchart/internal/db"
	"github.com/ziadkadry99/orgchart/internal/live"
	"github.com/ziadkadry99/orgchart/internal/orggraph"
	"github.com/ziadkadry99/orgchart/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the orgchart HTTP server",
	Long: `Loads the configured directory export and serves hierarchy, membership,
and visibility queries over a REST API, with WebSocket notifications on
snapshot reloads.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured server port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	// Open the audit database.
	dbPath := filepath.Join(cfg.DataDir, "orgchart.db")
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	auditStore := audit.NewStore(database)

	// Build the graph service and load the initial snapshot.
	svc := orggraph.NewService(cfg.SnapshotPath, cfg.ChannelsPath)
	graph, err := svc.Reload()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if err := auditStore.Log(cmd.Context(), auditPass(cfg.SnapshotPath, audit.ActorSystem, audit.ActionLoaded, graph)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record load pass: %v\n", err)
	}

	// Wire up the server, live hub, and feature routes.
	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAll,
	})
	r := srv.Router()

	hub := live.NewHub()
	hub.RegisterRoutes(r)

	orggraph.RegisterRoutes(r, svc, func(g *orggraph.Graph) {
		if err := auditStore.Log(context.Background(), auditPass(cfg.SnapshotPath, audit.ActorAPI, audit.ActionReloaded, g)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record reload pass: %v\n", err)
		}
		hub.Broadcast(live.Event{
			Type:     "snapshot",
			LoadedAt: g.LoadedAt,
			Teams:    len(g.Teams),
			Users:    len(g.Users),
		})
	})

	audit.RegisterRoutes(r, auditStore)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "orgchart server v%s starting on port %d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Snapshot: %s\n", cfg.SnapshotPath)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "  Teams: %d, users: %d\n", len(graph.Teams), len(graph.Users))

	return srv.Start()
}
