package main

import (
	"context"
	"flag"
	"log"

	"github.com/dmitrijs2005/securepass/internal/client/cli"
	"github.com/dmitrijs2005/securepass/internal/client/config"
)

func main() {

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
