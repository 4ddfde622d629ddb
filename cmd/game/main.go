package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/endo5501/mirundal/internal/application/facility"
	"github.com/endo5501/mirundal/internal/application/game"
	"github.com/endo5501/mirundal/internal/application/input"
	"github.com/endo5501/mirundal/internal/application/replay"
	"github.com/endo5501/mirundal/internal/infrastructure/config"
	"github.com/endo5501/mirundal/internal/infrastructure/i18n"
	"github.com/endo5501/mirundal/internal/ui/windowing"
	"github.com/endo5501/mirundal/internal/ui/windows"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay input from file")
	langFlag := flag.String("lang", "", "Override the default language")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys)
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	winCfg, err := loader.LoadWindows()
	if err != nil {
		log.Fatalf("Failed to load window descriptors: %v", err)
	}

	// The configured default stays the fallback catalog, so a partially
	// translated locale selected with -lang falls back to it instead of
	// showing raw keys.
	catalog, err := i18n.Load(fsys, "locales", cfg.UI.DefaultLanguage)
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}
	if *langFlag != "" {
		if err := catalog.SetLanguage(*langFlag); err != nil {
			log.Fatalf("Failed to select language: %v", err)
		}
	}

	// Build the window system
	manager := windowing.NewManager(
		windowing.WithLogger(logger),
		windowing.WithPoolCapacity(cfg.UI.PoolCapacity),
	)
	windows.RegisterAll(manager)

	registry := facility.New(manager, winCfg, catalog, logger)
	if err := registry.OpenRoot(); err != nil {
		log.Fatalf("Failed to open root screen: %v", err)
	}

	// Wire the input source, optionally recording or replaying
	var source input.Source = input.NewKeyboard()
	var recorder *replay.Recorder
	switch {
	case *replayFlag != "":
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		source = replay.NewReplayer(*data)
		logger.Info("replaying session", "file", *replayFlag)
	case *recordFlag != "":
		recorder = replay.NewRecorder(source)
		source = recorder
		logger.Info("recording session", "file", *recordFlag)
	}

	g := game.New(manager, source, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	g.SetDT(1.0 / float64(cfg.Display.Framerate))

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Mirundal")
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if recorder != nil {
		if err := recorder.Save(*recordFlag); err != nil {
			logger.Error("failed to save recording", "error", err)
		} else {
			logger.Info("recording saved", "file", *recordFlag, "events", recorder.EventCount())
		}
	}
	manager.Shutdown()
}
