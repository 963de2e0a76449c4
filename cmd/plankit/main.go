// Package main wires a sample planning prompt through every plankit
// feature and writes the artifacts to the output directory.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plankit/plankit/internal/config"
	"github.com/plankit/plankit/internal/documents"
	"github.com/plankit/plankit/internal/experts"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/internal/llm/activity"
	"github.com/plankit/plankit/internal/premortem"
	"github.com/plankit/plankit/internal/purpose"
	"github.com/plankit/plankit/internal/techtasks"
)

// Version is set at build time via ldflags.
var Version = "dev"

const samplePrompt = "Establish a solar farm in Denmark."

func main() {
	configPath := flag.String("config", "plankit.yaml", "Path to the YAML configuration file")
	modelID := flag.String("model", "", "Model ID to use (default: config default_model)")
	prompt := flag.String("prompt", samplePrompt, "Plan prompt to run through the features")
	purposeName := flag.String("purpose", "business", "Plan purpose: business, personal or other")
	outputDir := flag.String("output", "", "Output directory (default: config output_dir)")
	fullPremortem := flag.Bool("full-premortem", false, "Run the three-batch premortem instead of the fast single batch")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if len(cfg.Models) == 0 {
		log.Fatal().Str("config", *configPath).Msg("No models configured")
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	p, err := purpose.Parse(*purposeName)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid purpose")
	}

	model := *modelID
	if model == "" {
		model = cfg.DefaultModel
	}
	registry := llm.NewRegistry(cfg, nil)
	clients, err := registry.ClientsForRun(model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve model")
	}

	if cfg.ActivityLog != "" {
		tracker, closer, err := activity.Open(cfg.ActivityLog)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ActivityLog).Msg("Activity log unavailable, tracking disabled")
		} else {
			defer closer.Close()
			for i, client := range clients {
				clients[i] = tracker.Wrap(client)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Stop requested, finishing current call")
		cancel()
	}()

	exec, err := llm.NewExecutor(clients, func() bool { return ctx.Err() != nil })
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create executor")
	}

	log.Info().
		Str("model", model).
		Str("purpose", string(p)).
		Str("version", Version).
		Msg("Starting plankit run")

	if err := run(ctx, exec, cfg.OutputDir, p, *prompt, *fullPremortem); err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}
	log.Info().Str("output", cfg.OutputDir).Msg("Run complete")
}

// run executes the four features in sequence and saves their artifacts.
func run(ctx context.Context, exec *llm.Executor, outDir string, p purpose.Purpose, prompt string, fullPremortem bool) error {
	out := func(name string) string { return filepath.Join(outDir, name) }

	log.Info().Msg("Identifying documents")
	identified, err := documents.Identify(ctx, exec, p, prompt)
	if err != nil {
		return err
	}
	if err := identified.SaveJSON(out("documents_raw.json")); err != nil {
		return err
	}
	if err := identified.SaveChecklist(out("documents.json")); err != nil {
		return err
	}
	if err := identified.SaveMarkdown(out("documents.md")); err != nil {
		return err
	}
	log.Info().
		Int("to_create", len(identified.Checklist.DocumentsToCreate)).
		Int("to_find", len(identified.Checklist.DocumentsToFind)).
		Msg("Documents identified")

	if docs := identified.Checklist.DocumentsToCreate; len(docs) > 0 {
		filtered, err := documents.FilterToCreate(ctx, exec, p, prompt, docs)
		if err != nil {
			return err
		}
		if err := filtered.SaveJSON(out("documents_to_create_filtered.json")); err != nil {
			return err
		}
		log.Info().Int("kept", len(filtered.Kept)).Msg("Filtered documents to create")
	}
	if docs := identified.Checklist.DocumentsToFind; len(docs) > 0 {
		filtered, err := documents.FilterToFind(ctx, exec, p, prompt, docs)
		if err != nil {
			return err
		}
		if err := filtered.SaveJSON(out("documents_to_find_filtered.json")); err != nil {
			return err
		}
		log.Info().Int("kept", len(filtered.Kept)).Msg("Filtered documents to find")
	}

	detail := premortem.DetailFast
	if fullPremortem {
		detail = premortem.DetailFull
	}
	log.Info().Str("detail", string(detail)).Msg("Running premortem")
	mortem, err := premortem.Execute(ctx, exec, detail, prompt)
	if err != nil {
		return err
	}
	if err := mortem.SaveJSON(out("premortem.json")); err != nil {
		return err
	}
	if err := mortem.SaveMarkdown(out("premortem.md")); err != nil {
		return err
	}
	log.Info().
		Int("assumptions", len(mortem.Analysis.AssumptionsToKill)).
		Int("failure_modes", len(mortem.Analysis.FailureModes)).
		Msg("Premortem done")

	log.Info().Msg("Finding experts")
	found, err := experts.Find(ctx, exec, prompt)
	if err != nil {
		return err
	}
	if err := found.SaveJSON(out("experts_raw.json")); err != nil {
		return err
	}
	if err := found.SaveCleaned(out("experts.json")); err != nil {
		return err
	}
	log.Info().Int("experts", len(found.Experts)).Msg("Experts found")

	log.Info().Msg("Generating technical tasks")
	tasks, err := techtasks.Generate(ctx, exec, techtasks.ProjectPlan{GoalStatement: prompt}, nil)
	if err != nil {
		return err
	}
	if err := tasks.SaveJSON(out("tasks.json")); err != nil {
		return err
	}
	if err := tasks.SaveMarkdown(out("tasks.md")); err != nil {
		return err
	}
	log.Info().Int("tasks", len(tasks.TaskList.Tasks)).Msg("Tasks generated")

	return nil
}
