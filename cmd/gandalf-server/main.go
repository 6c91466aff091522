package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zaid5678/gandalf/internal/cache"
	"github.com/zaid5678/gandalf/internal/config"
	"github.com/zaid5678/gandalf/internal/server"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed loading configuration")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cache.InitRedis(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unavailable, action history disabled")
		} else {
			log.WithField("addr", cfg.RedisAddr).Info("action historian connected")
		}
	}

	store := server.NewInMemorySessionStore(server.SessionOptions{
		UseJokers:    cfg.UseJokers,
		BotTurnDelay: time.Duration(cfg.BotTurnDelayMs) * time.Millisecond,
	})
	srv := server.New(store, log, cfg.AllowedOrigins)

	log.WithField("addr", cfg.ListenAddr).Info("gandalf server listening")
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
