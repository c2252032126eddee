package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"truco-server/internal/config"
	"truco-server/internal/jwt"
	"truco-server/internal/mux"
	"truco-server/pkg/db"
	"truco-server/pkg/model"
	"truco-server/pkg/playable/truco"
	"truco-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	pitBoss := room.NewPitBoss(recorder())
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"Truco-PlayerID"},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, matchDefaults()))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logrus.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server stopped")
	}

	pitBoss.EndShift()
}

// recorder persists matches when a database is configured
func recorder() room.Recorder {
	if config.Instance().PGDSN == "" {
		logrus.Warn("no database configured, matches will not be recorded")
		return room.NopRecorder{}
	}

	// run the db migrations
	db.Migrate()
	return model.NewMatchStore(db.Instance())
}

func matchDefaults() mux.MatchDefaults {
	cfg := config.Instance().Game

	opts := truco.DefaultOptions()
	if cfg.MatchPoints > 0 {
		opts.MatchPoints = cfg.MatchPoints
	}

	opts.BotDelay = cfg.BotDelay
	opts.SecureShuffle = cfg.SecureShuffle

	return mux.MatchDefaults{
		Options: opts,
		Bot:     cfg.Bot,
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
