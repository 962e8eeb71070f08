package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/foodstore/internal/server"
	"github.com/dmitrijs2005/foodstore/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
