package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/cmlabs-hris/smart-attendance-go/internal/config"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
	"github.com/cmlabs-hris/smart-attendance-go/internal/stubapi"
)

func main() {
	cfg, err := config.LoadStub()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := logging.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)

	router, err := stubapi.New(context.Background(), stubapi.Options{
		JWTSecret:        cfg.JWT.Secret,
		AccessExpiration: cfg.JWT.AccessExpiration,
		AllowedOrigins:   cfg.Stub.AllowedOrigins,
		Seed:             true,
		Logger:           logger,
	})
	if err != nil {
		log.Fatal("Failed to build stub backend:", err)
	}

	logger.Info("Stub backend listening", "port", cfg.Stub.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Stub.Port), router); err != nil {
		log.Fatal(err)
	}
}
