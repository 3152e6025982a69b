package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/joho/godotenv"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store/fixture"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	opt struct {
		config string
		port   int
		debug  bool
	}

	version = "0.0.1-src"
	commit  = versioninfo.Short()
)

func main() {
	flag.StringVar(&opt.config, "config", "config.yaml", "config file path")
	flag.IntVar(&opt.port, "port", 8080, "server port")
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

	if v.GetBool("fixture.enabled") {
		if err := fixture.Load(ctx, app.users, app.cards, fixture.Default()); err != nil {
			logger.Error("fixture.Load", "err", err)
			return
		}
	}

	logger.Info("card transfer server launched", "version", version, "commit", commit, "addr", app.svr.Addr)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.svr.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return app.svr.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", "err", err)
	}
}

type app struct {
	svr    *http.Server
	users  core.UserStore
	cards  core.CardStore
	logger *slog.Logger
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

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "card-transfer.db?_busy_timeout=5000&_txlock=immediate")
	v.SetDefault("auth.store", "memory")
	v.SetDefault("auth.verification_ttl", "5m")
	v.SetDefault("auth.session_ttl", "30m")
	v.SetDefault("auth.code_digits", 6)
}
