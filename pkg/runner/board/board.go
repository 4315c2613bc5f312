// Package boardui runs the interactive whiteboard.
package boardui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/board"
	"tableflip.dev/whiteboard/pkg/config"
	"tableflip.dev/whiteboard/pkg/protocol"
	"tableflip.dev/whiteboard/pkg/runner/source"
	"tableflip.dev/whiteboard/pkg/transport"
	"tableflip.dev/whiteboard/pkg/tui/components/whiteboard"
	"tableflip.dev/whiteboard/pkg/tui/events"
)

// Board launches the Bubble Tea UI over a task tree.
type Board struct {
	Config *config.Config
	File   string
	Demo   bool
}

// Do loads the tree, connects the transport and blocks until the UI exits.
func (b *Board) Do(ctx context.Context) error {
	cfg := b.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	closeLog, err := SetupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	file := b.File
	if file == "" {
		file = cfg.File
	}
	root, err := source.Load(file, b.Demo)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tr, closeTransport, err := transport.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeTransport(); err != nil {
			log.WithError(err).Warn("board: close transport")
		}
	}()

	emitter := protocol.NewEmitter(tr)
	model := whiteboard.New(board.New(root, emitter))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if err := emitter.Mount(ctx, func(msg protocol.Message) {
		p.Send(events.RemoteMsg{Message: msg})
	}); err != nil {
		return err
	}

	log.WithFields(log.Fields{"file": file, "demo": b.Demo, "transport": cfg.Transport}).Info("board: start")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board: run: %w", err)
	}
	return nil
}

// SetupLogging points logrus at cfg.Log, or discards output when no log file
// is configured so nothing is written over the UI.
func SetupLogging(cfg *config.Config) (func(), error) {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.Log == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("board: open log %s: %w", cfg.Log, err)
	}
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
