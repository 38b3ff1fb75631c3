package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/fragmede/hnpanel/internal/api"
	"github.com/fragmede/hnpanel/internal/command"
	"github.com/fragmede/hnpanel/internal/config"
	"github.com/fragmede/hnpanel/internal/logging"
	"github.com/fragmede/hnpanel/internal/newsview"
	"github.com/fragmede/hnpanel/internal/panel"
	"github.com/fragmede/hnpanel/internal/ui"
)

func main() {
	once := flag.Bool("once", false, "fetch once, print the page to stdout and exit")
	addr := flag.String("addr", "", "panel listen address (overrides config)")
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		os.Exit(runOnce(ctx, cfg, os.Stdout))
	}
	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runOnce renders the page to w without the panel server or the TUI.
func runOnce(ctx context.Context, cfg config.Config, w io.Writer) int {
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rec := panel.NewRecorder("style.css")
	client := api.NewClient(api.WithTimeout(cfg.RequestTimeout))
	if err := newsview.New(client, rec, log).FetchAndRender(ctx); err != nil {
		for _, msg := range rec.Errors() {
			fmt.Fprintln(os.Stderr, msg)
		}
		return 1
	}

	_, html := rec.Page()
	fmt.Fprint(w, html)
	return 0
}

func run(ctx context.Context, cfg config.Config) error {
	if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	log, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	client := api.NewClient(api.WithTimeout(cfg.RequestTimeout))
	srv := panel.NewServer(cfg.ListenAddr, log)
	viewer := newsview.New(client, srv, log)

	registry := command.NewRegistry()
	if err := viewer.Register(registry); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := ui.NewApp(registry, newsview.CommandName, srv.URL(), cfg.OpenBrowser)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	srvErr := make(chan error, 1)
	go func() {
		err := srv.Run(ctx)
		if err != nil {
			log.WithError(err).Error("panel server stopped")
			p.Send(tea.Quit())
		}
		srvErr <- err
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	log.WithFields(logrus.Fields{"addr": cfg.ListenAddr}).Info("shutting down")
	cancel()
	return <-srvErr
}
