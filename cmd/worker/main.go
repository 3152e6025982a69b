package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/joho/godotenv"
	"github.com/pandodao/card-transfer/cmd/worker/cmds"
	"github.com/pandodao/card-transfer/worker/auditor"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	opt struct {
		config string
		debug  bool
	}

	version = "0.0.1-src"
	commit  = versioninfo.Short()
)

func main() {
	flag.StringVar(&opt.config, "config", "config.yaml", "config file path")
	flag.BoolVar(&opt.debug, "debug", false, "debug mode")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	v := initViper()
	logger := initLogger()

	app, cleanup, err := setupApp(v, logger)
	if err != nil {
		logger.Error("setup failed", "err", err)
		return
	}

	defer cleanup()

	// worker -config config.yaml ledger
	if args := flag.Args(); len(args) > 0 {
		if err := app.cmd.Run(ctx, args); err != nil {
			logger.Error("command failed", "err", err)
		}

		return
	}

	logger.Info("card transfer worker launched", "version", version, "commit", commit)

	var g errgroup.Group

	g.Go(func() error {
		return app.auditor.Run(ctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("worker exit", "err", err)
	}
}

type app struct {
	auditor *auditor.Auditor
	cmd     *cmds.Cmd
	logger  *slog.Logger
}

func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if opt.debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func initViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(opt.config)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		log.Panicln(err)
	}

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "card-transfer.db?_busy_timeout=5000&_txlock=immediate")
	v.SetDefault("auditor.interval", "1m")
	return v
}
