package main

import (
	"context"
	"log"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
