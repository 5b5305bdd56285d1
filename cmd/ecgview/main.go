package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ecgview/internal/config"
	"ecgview/internal/drawing"
	"ecgview/internal/ecg"
	"ecgview/internal/logging"
	"ecgview/internal/tui"
)

var (
	logFile    = flag.String("debug", "", "Write debug logs to file")
	configFile = flag.String("config", "", "Settings file (.toml, .yaml)")
	demoSecs   = flag.Float64("demo", 20, "Length of the synthetic record shown without a file, in seconds")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ecgview [--config ecgview.toml] [--debug debug.log] [record.json|record.csv]")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, cleanup, err := logging.SetupLogging(*logFile, slog.LevelDebug)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()
	slog.SetDefault(logger)
	drawing.SetLogger(logger)
	logger.Info("ecgview: started")

	cfg := config.Default()
	if *configFile != "" {
		if cfg, err = config.Open(*configFile); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	var m tui.Model
	if args := flag.Args(); len(args) > 0 {
		m = tui.NewWithPath(cfg, args[0])
	} else {
		m = tui.NewWithRecord(cfg, ecg.Synthetic(nil, ecg.DefaultSampleRate, *demoSecs, 0.8))
	}
	defer m.Close()

	w, err := tui.NewWatcher(logger)
	if err != nil {
		logger.Warn("file watching disabled", "err", err)
	} else {
		defer w.Close()
		m.AttachWatcher(w)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if w != nil {
		go func() {
			for path := range w.Changes() {
				p.Send(tui.RecordChanged(path))
			}
		}()
	}
	if _, err := p.Run(); err != nil {
		logger.Error("program", "err", err)
		fmt.Println("Error:", err)
	}
}
