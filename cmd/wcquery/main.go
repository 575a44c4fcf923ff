// Command wcquery runs the analytics queries from the terminal against the configured dataset.
//
//	wcquery top-teams metric=goals limit=5
//	wcquery team-comparison team1=Brazil "team2=West Germany"
//
// With no arguments it starts an interactive prompt.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/worldcup/stats-api/internal/config"
	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/models"
	"github.com/worldcup/stats-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pretty := term.IsTerminal(int(os.Stdout.Fd()))

	if len(os.Args) > 1 {
		env := execute(engine, os.Args[1:])
		if err := printEnvelope(os.Stdout, env, pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !env.Success {
			os.Exit(1)
		}
		return
	}

	if err := repl(engine, pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadEngine(ctx context.Context, cfg *config.Config) (*logic.Engine, error) {
	logger := zap.NewNop()
	src, err := store.Open(ctx, cfg.StoreOptions(logger))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ds, err := store.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return logic.NewEngine(ds, logger)
}

func repl(engine logic.AnalyticsService, pretty bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "worldcup> ",
		HistoryFile:     ".wcquery_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	snap := engine.Snapshot()
	fmt.Printf("World Cup query shell: %d matches, %d tournaments from %s\n", snap.Matches, snap.Tournaments, snap.Source)
	fmt.Printf("Type 'help' for commands\n\n")

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// ^C clears the line
			continue
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			fmt.Print(usage())
			continue
		}

		if err := printEnvelope(rl.Stdout(), execute(engine, splitLine(line)), pretty); err != nil {
			return err
		}
	}
}

func printEnvelope(w io.Writer, env models.Envelope, pretty bool) error {
	var (
		body []byte
		err  error
	)
	if pretty {
		body, err = json.MarshalIndent(env, "", "  ")
	} else {
		body, err = json.Marshal(env)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", body)
	return err
}
