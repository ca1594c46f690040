package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	trainstream "github.com/theoremus-urban-solutions/train-stream"
	"github.com/theoremus-urban-solutions/train-stream/config"
	"github.com/theoremus-urban-solutions/train-stream/retention"
	"github.com/theoremus-urban-solutions/train-stream/store"
	"github.com/theoremus-urban-solutions/train-stream/trafikverket"
)

func main() {
	_ = godotenv.Load()
	trainstream.InitLogging()
	log.Println("starting train stream store...")

	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Config

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()
	log.Printf("store opened at %s, retention %d hours", cfg.Store.Path, cfg.Retention.Hours)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := trafikverket.NewClient(cfg.Trafikverket.DataURL)
	lookback := time.Duration(cfg.Trafikverket.LookbackMinutes) * time.Minute
	apiKey := cfg.Trafikverket.APIKey

	positionQuery := func(now time.Time) string {
		return trafikverket.BuildPositionQuery(apiKey, now, lookback)
	}
	announcementQuery := func(now time.Time) string {
		return trafikverket.BuildAnnouncementQuery(apiKey, now, lookback)
	}

	go trafikverket.NewSupervisor("position", client, positionQuery, st).Run(ctx)
	go trafikverket.NewSupervisor("announcement", client, announcementQuery, st).Run(ctx)

	scheduler := retention.New(st, cfg.Retention.Hours,
		time.Duration(cfg.Retention.SweepIntervalMinutes)*time.Minute)
	scheduler.Start()

	trainstream.StartServer(cfg.Server.Port, st)
	trainstream.HandleGracefulShutdown(func() {
		cancel()
		scheduler.Stop()
	})
}
