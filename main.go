package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"storyline/internal/catalog"
	"storyline/internal/config"
	"storyline/internal/eventbus"
	"storyline/internal/stories"
	"storyline/internal/ui"
	"storyline/internal/ui/views"
)

func main() {
	var (
		configPath string
		storyID    string
		list       bool
		logPath    string
		noColor    bool
	)
	flag.StringVarP(&configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	flag.StringVarP(&storyID, "story", "s", "", "Story to open at startup, e.g. navigation/long-list")
	flag.BoolVarP(&list, "list", "l", false, "Print the story catalog and exit")
	flag.StringVar(&logPath, "log", "storyline.log", "Log file")
	flag.BoolVar(&noColor, "no-color", false, "Disable colors")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Config loaded from %s", configSvc.Path())

	if noColor || !cfg.UI.Color {
		views.DisableColor()
	}

	cat := catalog.New()
	if err := stories.Register(cat); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering stories: %v\n", err)
		os.Exit(1)
	}

	if list {
		printCatalog(cat)
		return
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	m, err := ui.NewModel(bus, cfg, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := startStory(m, storyID, cfg.UI.StartStory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	log.Printf("Starting UI...")
	_, runErr := p.Run()
	last := m.CurrentStoryID()
	m.Close()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", runErr)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	rememberStory(configSvc, cfg, last)
}

// startStory opens the story named on the command line, else the one from
// the config, else the first one. A stale config entry is not fatal.
func startStory(m *ui.Model, flagID, configID string) error {
	if flagID != "" {
		return m.Start(flagID)
	}
	if err := m.Start(configID); err != nil {
		if !errors.Is(err, catalog.ErrStoryNotFound) {
			return err
		}
		log.Printf("Config start_story %q: %v", configID, err)
		return m.Start("")
	}
	return nil
}

// rememberStory stores the last open story when a config file already
// exists, so the next run starts there
func rememberStory(svc config.ConfigService, cfg *config.Config, id string) {
	if id == "" || id == cfg.UI.StartStory {
		return
	}
	if _, err := os.Stat(svc.Path()); err != nil {
		return
	}
	cfg.UI.StartStory = id
	if err := svc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
		return
	}
	log.Printf("Config saved to %s", svc.Path())
}

func printCatalog(cat *catalog.Catalog) {
	for _, group := range cat.Groups() {
		fmt.Println(group)
		for _, s := range cat.Stories() {
			if s.Group == group {
				fmt.Printf("  %-28s %s\n", s.ID, s.Title)
			}
		}
	}
}
