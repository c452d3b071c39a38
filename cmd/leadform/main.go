package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appconfig "github.com/wolfman30/lead-capture/internal/config"
	"github.com/wolfman30/lead-capture/internal/leadform"
	"github.com/wolfman30/lead-capture/internal/leadform/tui"
	"github.com/wolfman30/lead-capture/pkg/logging"
)

type options struct {
	endpoint string
	timeout  time.Duration
	logFile  string
}

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		os.Exit(2)
	}

	logOut, closeLog, err := openLog(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leadform: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := logging.NewWithWriter(cfg.LogLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := leadform.NewClient(opts.endpoint, leadform.WithTimeout(opts.timeout))
	ctrl := leadform.NewController(client, logNotifier{logger: logger})

	logger.Info("lead form started", "endpoint", opts.endpoint)
	if err := tui.Run(ctx, ctrl); err != nil && ctx.Err() == nil {
		logger.Error("lead form exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "leadform: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg *appconfig.Config) (options, error) {
	fs := flag.NewFlagSet("leadform", flag.ContinueOnError)
	opts := options{}
	fs.StringVar(&opts.endpoint, "endpoint", cfg.LeadFormEndpoint, "lead submission endpoint URL")
	fs.DurationVar(&opts.timeout, "timeout", cfg.LeadFormTimeout, "request timeout")
	fs.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file (discarded when empty)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.endpoint == "" {
		fmt.Fprintln(fs.Output(), "endpoint must not be empty")
		return options{}, fmt.Errorf("empty endpoint")
	}
	return opts, nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

type logNotifier struct {
	logger *logging.Logger
}

func (n logNotifier) Notify(notice leadform.Notice) {
	switch notice.Kind {
	case leadform.NoticeSuccess:
		n.logger.Info("lead submitted")
	case leadform.NoticeError:
		n.logger.Warn("lead submission failed", "message", notice.Message)
	}
}
