package main

import (
	"context"
	"log"

	"user-console/cmd/console/app"
	"user-console/cmd/console/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}

func run() error {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	a, err := app.New()
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
