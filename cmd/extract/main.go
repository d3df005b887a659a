// Command extract converts a .docx question bank into the quiz JSON file.
//
// Usage:
//
//	extract [flags] [file.docx]
//
// Settings come from the environment (and .env), then the optional YAML
// profile, then flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/logger"
	"github.com/stemsi/quizdoc/internal/report"
	"github.com/stemsi/quizdoc/internal/service"
)

func main() {
	cfg := config.Load()

	var in, out, title, subtitle, profile string
	flag.StringVar(&in, "in", cfg.DocxPath, "Path to the .docx question bank")
	flag.StringVar(&out, "out", cfg.OutputPath, "Path of the JSON file to write")
	flag.StringVar(&title, "title", "", "Quiz title (default from QUIZ_TITLE or profile)")
	flag.StringVar(&subtitle, "subtitle", "", "Quiz subtitle (default from QUIZ_SUBTITLE or profile)")
	flag.StringVar(&profile, "profile", cfg.ProfilePath, "YAML profile with title, subtitle and skip_prefixes")
	flag.Usage = printUsage
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).
		With().
		Str("run_id", uuid.NewString()).
		Logger()

	if profile != "" {
		p, err := config.LoadProfile(profile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load profile")
		}
		p.Apply(cfg)
	}

	cfg.DocxPath = in
	if flag.NArg() > 0 {
		cfg.DocxPath = flag.Arg(0)
	}
	cfg.OutputPath = out
	if title != "" {
		cfg.Title = title
	}
	if subtitle != "" {
		cfg.Subtitle = subtitle
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console := report.NewConsole(os.Stdout, os.Getenv("NO_COLOR") != "" || !logger.IsTerminal(os.Stdout))
	quizService := service.NewQuizService(cfg, nil, log)

	console.Start(cfg.DocxPath)

	res, err := quizService.BuildFromFile(ctx, cfg.DocxPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DocxPath).Msg("Failed to build quiz")
	}

	console.Parsed(res.Quiz.TotalQuestions)
	console.Diagnostics(res.Report)

	if err := quizService.Save(res.Quiz); err != nil {
		log.Fatal().Err(err).Str("path", cfg.OutputPath).Msg("Failed to write quiz")
	}

	console.Saved(cfg.OutputPath)
	console.Preview(res.Quiz.Questions)
}

func printUsage() {
	fmt.Fprintln(flag.CommandLine.Output(), "Usage: extract [flags] [file.docx]")
	fmt.Fprintln(flag.CommandLine.Output(), "Flags:")
	flag.PrintDefaults()
}
