package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/adminvote/internal/client/cli"
	"github.com/dmitrijs2005/adminvote/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, closer, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closer.Close()

	app.Run(ctx)

}
