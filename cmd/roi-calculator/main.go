package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/roi-calculator/internal/calculator"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/eventloop"
	"github.com/iwvelando/roi-calculator/internal/presentation"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const redrawInterval = 50 * time.Millisecond

func main() {
	configLocation := flag.String("config", "", "path to calculator configuration file (config.yaml if present, else built-in defaults)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	plain := flag.Bool("plain", false, "print settled results instead of redrawing the screen")
	flag.Parse()

	// Best-effort: a missing .env is normal outside local development.
	_ = godotenv.Load()

	if *configLocation == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			*configLocation = constants.DefaultConfigFile
		}
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New(logger, conf.Animation.FrameInterval)
	sink := presentation.NewRecorder()
	animator := presentation.NewAnimator(loop, sink, format.Currency)
	presenter := presentation.NewPresenter(animator, sink, format.Currency,
		conf.Animation.CountUpDuration, conf.Multipliers.FinancingMonths)
	coordinator := calculator.NewCoordinator(logger, loop, conf, presenter)
	term := newTerminal(os.Stdout, sink, !*plain)

	if err := loop.Post(func() { coordinator.Start() }); err != nil {
		logger.Fatal("failed to start calculator",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	go readCommands(ctx, os.Stdin, loop, coordinator, term, logger, stop)
	go term.run(ctx, redrawInterval)

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("event loop stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// readCommands turns stdin lines into loop events. A line is either
// "field=value" or one of the commands reset, state and quit.
func readCommands(ctx context.Context, r io.Reader, loop *eventloop.Loop, c *calculator.Coordinator, term *terminal, logger *zap.Logger, quit func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var event func()
		switch strings.ToLower(line) {
		case "quit", "exit":
			quit()
			return
		case "reset":
			event = func() { c.Reset() }
		case "state":
			event = func() {
				data, err := json.MarshalIndent(c.Snapshot(), "", "  ")
				if err != nil {
					logger.Error("failed to encode state", zap.String("op", "main.readCommands"), zap.Error(err))
					return
				}
				term.message(string(data))
			}
		default:
			name, value, ok := strings.Cut(line, "=")
			if !ok {
				term.message(fmt.Sprintf("expected field=value, got %q", line))
				continue
			}
			field, err := calculator.ParseField(name)
			if err != nil {
				term.message(err.Error())
				continue
			}
			event = func() {
				if err := c.HandleInput(field, strings.TrimSpace(value)); err != nil {
					logger.Warn("rejected input",
						zap.String("op", "main.readCommands"),
						zap.Error(err),
					)
				}
			}
		}

		if err := loop.Post(event); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("failed to read input",
			zap.String("op", "main.readCommands"),
			zap.Error(err),
		)
	}
	quit()
}
