package main

import (
	"log"

	"uigen-backend/internal/bootstrap"
	"uigen-backend/internal/shared/config"
	"uigen-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (provider=%s)", addr, cfg.LLMProvider)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
