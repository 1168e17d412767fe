package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/taskd/internal/api"
	"github.com/dyluth/taskd/internal/config"
	"github.com/dyluth/taskd/internal/printer"
	"github.com/dyluth/taskd/internal/tasks"
	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath   string
	serveAddr         string
	serveRedisURL     string
	serveNamespace    string
	serveAtomicCreate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the task HTTP server",
	Long: `Run the task HTTP server against a Redis store.

Configuration is resolved from defaults, the --config YAML file, environment
variables (REDIS_URL, TASKD_ADDR, TASKD_NAMESPACE, TASKD_ATOMIC_CREATE, ...)
and finally command-line flags.

If the process was started with an inherited socket (LISTEN_FDS, e.g. via
systemd or systemfd) that socket is used instead of binding --addr.

Examples:
  # Serve on the default address
  REDIS_URL=redis://localhost:6379 taskd serve

  # Use a config file and reject duplicate ids atomically
  taskd serve --config taskd.yml --atomic-create`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to taskd.yml")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveRedisURL, "redis-url", "", "Redis URL (overrides REDIS_URL)")
	serveCmd.Flags().StringVar(&serveNamespace, "namespace", "", "Key namespace (empty stores tasks under their ids)")
	serveCmd.Flags().BoolVar(&serveAtomicCreate, "atomic-create", false, "Create with a single conditional write")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfg, err := config.Load(serveConfigPath, func(c *config.Config) {
		if flags.Changed("addr") {
			c.Server.Addr = serveAddr
		}
		if flags.Changed("redis-url") {
			c.Redis.URL = serveRedisURL
		}
		if flags.Changed("namespace") {
			c.Redis.Namespace = serveNamespace
		}
		if flags.Changed("atomic-create") {
			c.Redis.AtomicCreate = serveAtomicCreate
		}
	})
	if err != nil {
		return printer.Error(
			"Invalid configuration",
			err.Error(),
			[]string{
				"Set REDIS_URL or pass --redis-url",
				"Check the file passed with --config",
			},
		)
	}

	redisOpts, err := cfg.Redis.Options()
	if err != nil {
		return printer.Error("Invalid Redis URL", err.Error(), nil)
	}

	store := taskstore.NewClient(redisOpts, cfg.Redis.Namespace)
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		log.Printf("[WARN] Redis not reachable at startup: %v", err)
	}
	cancel()

	var opts []tasks.Option
	if cfg.Redis.AtomicCreate {
		opts = append(opts, tasks.WithAtomicCreate(store))
		log.Printf("[INFO] Atomic create enabled")
	}

	srv := api.NewServer(tasks.NewService(store, opts...), store, api.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	ln, err := api.Listen(cfg.Server.Addr)
	if err != nil {
		return printer.Error(
			"Failed to open listener",
			err.Error(),
			[]string{"Choose a free port with --addr or TASKD_ADDR"},
		)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case sig := <-sigCh:
		log.Printf("[INFO] Received signal %v, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[ERROR] Shutdown did not complete: %v", err)
		}
		return <-errCh
	case err := <-errCh:
		if err != nil {
			return printer.Error("Server stopped unexpectedly", err.Error(), nil)
		}
		return nil
	}
}
