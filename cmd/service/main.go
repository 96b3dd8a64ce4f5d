package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"quiz-service/internal/app"
	"quiz-service/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config, err := app.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("can't create new config: %s", err)
	}

	application, err := app.New(ctx, config)
	if err != nil {
		log.Fatalf("application could not been initialized: %s", err)
	}

	service.New(application.Logger(), application.DB()).Register(application.Router())

	if err = application.Run(); err != nil {
		log.Fatalf("application terminated abnormally: %s", err)
	}
}
