package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/query"
	"github.com/patentscout/patentscout/internal/session"
	"github.com/patentscout/patentscout/internal/setup"
)

// investigate drives the pipeline from a terminal. With -query it
// runs one-shot: compile the StructuredQuery JSON file, retrieve and
// rank against -intent, print the table. Without it, each stdin line
// is one user turn, "/summarize JP-1,JP-2" summarizes a selection of
// the ranked results, "/quit" exits.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	level := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	maxResults := flag.Int("max-results", 10, "Ranked results to print per search")
	queryFile := flag.String("query", "", "StructuredQuery JSON file for a one-shot search")
	intent := flag.String("intent", "", "Investigation intent to rank the one-shot results against")
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		logger = logger.Level(lvl)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Retriever.Close()

	if *queryFile != "" {
		if err := runOneShot(ctx, deps, *queryFile, *intent, *maxResults); err != nil {
			log.Fatal().Err(err).Msg("One-shot search failed")
		}
		return
	}

	id := deps.Store.Create(deps.Weights)
	fmt.Printf("session %s — describe the technology you want to investigate\n", id)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		var state session.State
		if selection, ok := strings.CutPrefix(line, "/summarize "); ok {
			numbers := splitSelection(selection)
			state, err = deps.Store.Update(id, func(s session.State) session.State {
				return deps.Orchestrator.Summarize(ctx, s, numbers)
			})
		} else {
			message := line
			state, err = deps.Store.Update(id, func(s session.State) session.State {
				return deps.Orchestrator.RunTurn(ctx, s, message)
			})
		}
		if err != nil {
			log.Fatal().Err(err).Msg("Session lost")
		}

		printTurn(state, *maxResults)

		if ctx.Err() != nil {
			break
		}
	}
}

func runOneShot(ctx context.Context, deps *setup.Dependencies, queryFile, intent string, maxResults int) error {
	data, err := os.ReadFile(queryFile)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}

	var q models.StructuredQuery
	if err := json.Unmarshal(data, &q); err != nil {
		return fmt.Errorf("failed to parse query file: %w", err)
	}

	template, params, err := query.Compile(q)
	if err != nil {
		return err
	}

	docs, err := deps.Retriever.Search(ctx, template, params)
	if err != nil {
		return err
	}

	if intent != "" {
		ranked, err := deps.Ranker.Rank(ctx, intent, docs, deps.Weights)
		if err != nil {
			log.Warn().Err(err).Msg("Ranking degraded, printing unscored results")
		}
		docs = ranked
	}

	state := session.State{RankedResults: docs, CurrentStage: session.StageRanked}
	printTurn(state, maxResults)
	return nil
}

func printTurn(state session.State, maxResults int) {
	if state.LastError != nil {
		fmt.Printf("[%s] %s\n", state.LastError.Kind, state.LastError.Message)
	}

	if len(state.ChatHistory) > 0 {
		last := state.ChatHistory[len(state.ChatHistory)-1]
		if last.Role == models.RoleAssistant {
			fmt.Println(last.Text)
		}
	}

	if state.CurrentStage != session.StageRanked || len(state.RankedResults) == 0 {
		return
	}

	fmt.Printf("\n%-16s %-8s %-10s %s\n", "PUBLICATION", "SCORE", "DATE", "TITLE")
	for i, doc := range state.RankedResults {
		if i >= maxResults {
			fmt.Printf("... and %d more\n", len(state.RankedResults)-maxResults)
			break
		}
		fmt.Printf("%-16s %-8.3f %-10s %s\n", doc.PublicationNumber, doc.Score, doc.PublicationDate, truncate(doc.Title, 60))
	}
	fmt.Println()
}

func splitSelection(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
