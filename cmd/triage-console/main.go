package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/theimaginaryfoundation/triage-o-bot/triage"
	"github.com/theimaginaryfoundation/triage-o-bot/triage/audit"
	"github.com/theimaginaryfoundation/triage-o-bot/triage/config"
	"github.com/theimaginaryfoundation/triage-o-bot/triage/provider"
)

func main() {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := flags.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	config.LoadEnvFiles()

	cfg := config.Default()
	if flags.ConfigPath != "" {
		cfg, err = config.LoadFile(flags.ConfigPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(2)
		}
	}
	if flags.Model != "" {
		cfg.Model = flags.Model
	}
	if flags.AuditDB != "" {
		cfg.AuditDB = flags.AuditDB
	}

	apiKey := flags.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	logLevel := slog.LevelError
	if flags.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder triage.Recorder
	if cfg.AuditDB != "" {
		store, err := audit.Open(cfg.AuditDB)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer store.Close()
		recorder = store
	}

	api := openai.NewClient(option.WithAPIKey(apiKey))
	classifier := provider.NewClient(&api, cfg.Model, logger)
	detector := triage.NewKeywordDetector(cfg.HighRiskPhrases)
	pipeline := triage.NewPipeline(detector, classifier, logger)
	selector := triage.NewInterventionSelector(cfg.Scripts.Map())

	sensors := triage.NewSensorSuite()
	if flags.Seed != 0 {
		sensors = triage.NewSensorSuiteSeeded(flags.Seed)
	}

	session := triage.NewSession(pipeline, selector, sensors, recorder, logger)

	rl, err := readline.New("you> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("init readline: %w", err).Error())
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("Hello, I'm here to listen. Type \"quit\" to end the session.")
	if err := runLoop(ctx, session, cfg.Resources, rl); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// runLoop is the outer turn loop: read a line, run the turn, print the
// reply, and hand off to the escalation flow on crisis. A crisis turn ends
// the session unconditionally once the flow resolves.
func runLoop(ctx context.Context, session *triage.Session, resources triage.CrisisResources, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			fmt.Println("Take care of yourself. Goodbye.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if triage.IsQuit(text) {
			fmt.Println("Take care of yourself. Goodbye.")
			return nil
		}

		res := session.Turn(ctx, text)
		if !res.Crisis {
			fmt.Println("companion> " + res.Reply)
			continue
		}

		flow := triage.NewEscalationFlow(resources)
		rl.SetPrompt("choice> ")
		outcome, err := flow.Run(func() (string, error) {
			l, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				return "", io.EOF
			}
			return l, err
		}, os.Stdout)
		if err != nil {
			return err
		}
		session.RecordEscalation(outcome)
		return nil
	}
}
