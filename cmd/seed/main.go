package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storerating/internal/app/bootstrap"
)

// Seed entrypoint. Creates the demo accounts and store, or resets the demo
// passwords when they already exist.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildSeeder(ctx)
	if err != nil {
		log.Fatalf("bootstrap seed failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("seed close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("seed failed: %v", err)
		return
	}
	log.Printf("demo accounts ready: admin@example.com, john@example.com, owner@techstore.com (password %s)", app.Password())
}
