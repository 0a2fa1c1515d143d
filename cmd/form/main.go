package main

import (
	"flag"
	"log"

	"github.com/mpetrov/usersvc/internal/app"
	"github.com/mpetrov/usersvc/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/form.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.NewForm(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
