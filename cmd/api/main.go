package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Ngole71/eligibility-checker/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("eligibility api exited: %v", err)
	}
}
