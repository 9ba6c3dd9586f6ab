package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/memberhub/internal/client/cli"
	"github.com/dmitrijs2005/memberhub/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
