package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"map-viewport/config"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	imagePath := flag.String("image", "", "map image to show, overrides the configuration")
	writeConfig := flag.Bool("write-config", false, "write the effective configuration to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, config.ErrNotFound) {
		log.Println("no configuration found, using defaults:", err)
	} else if err != nil {
		log.Fatal(err)
	}
	if *imagePath != "" {
		cfg.Image.Path = *imagePath
	}

	if *writeConfig {
		if err := config.Save(cfg, *configPath); err != nil {
			log.Fatal(err)
		}
		log.Println("configuration written to", *configPath)
		return
	}

	g, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
