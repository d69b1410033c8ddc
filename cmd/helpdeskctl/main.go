package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-core/internal/config"
	"github.com/spec-kit/helpdesk-core/internal/observability"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(os.Stderr)
		return 1
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		return 1
	}

	start := time.Now()
	runErr := cmd.run(app, args[1:])

	// The original interface always shows a short spinner before the
	// outcome; the delay is cosmetic and configurable.
	if latency := cfg.Demo.SimulatedLatency(); latency > 0 {
		time.Sleep(latency)
	}

	exitCode := apperrors.ExitCode(runErr)
	app.metrics.RecordCommand(cmd.name, exitCode, time.Since(start))
	if runErr != nil {
		domainErr := apperrors.ToDomainError(runErr)
		app.metrics.RecordError(cmd.name, domainErr.Code)
		logger.Debug("command failed",
			zap.String("command", cmd.name),
			zap.String("code", domainErr.Code),
			zap.Error(domainErr))
		fmt.Fprintf(os.Stderr, "error (%s): %s\n", domainErr.Code, domainErr.Message)
	}
	return exitCode
}
