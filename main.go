package main

import (
	"fmt"
	"os"

	"raidlytics/backend"
	"raidlytics/config"
	"raidlytics/frontend"
	"raidlytics/guild"
	"raidlytics/logger"
	"raidlytics/player"
	"raidlytics/report"
	"raidlytics/share"
	"raidlytics/simstore"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func main() {
	err := run()
	if err != nil {
		fmt.Printf("%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	err = share.InitSentry(cfg.SentryDSN)
	if err != nil {
		return err
	}
	defer share.FlushSentry()

	httpClient, err := share.NewHTTPClient(cfg.HTTPTimeout, cfg.HTTPProxyURL)
	if err != nil {
		return err
	}
	api := backend.New(cfg.BackendURL, httpClient)

	kv, err := simstore.Open(cfg.Sim.Kind, cfg.Sim.Path)
	if err != nil {
		return err
	}
	sims := simstore.New(kv)
	defer sims.Close()

	h := frontend.New(frontend.Options{
		Log:             log.With("component", "frontend"),
		CompareAPI:      api,
		Reports:         report.NewService(api, sims),
		Players:         player.NewService(api, sims),
		Guilds:          guild.NewService(api),
		RecaptchaSecret: cfg.Recaptcha,
	})

	g := gin.New()
	h.Route(g)

	log.Info("listening", "addr", cfg.ListenAddr, "backend", api.BaseURL(), "simStore", cfg.Sim.Kind)
	return errors.WithStack(g.Run(cfg.ListenAddr))
}
