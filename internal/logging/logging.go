package logging

import (
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// SetupLogging configures logging.
// If filename is empty, logs are discarded.
// If filename is set, structured logs go to that file and Bubble Tea logs
// are enabled too.
func SetupLogging(filename string, level slog.Level) (logger *slog.Logger, cleanup func(), err error) {
	if filename == "" {
		log.SetOutput(io.Discard)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	// configure stdlib logger
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// configure Bubble Tea logger
	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	// cleanup closes both files
	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return logger, cleanup, nil
}
