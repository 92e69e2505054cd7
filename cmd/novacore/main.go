package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	novacore "github.com/yuchemey-cpu/NovaCore"
	"github.com/yuchemey-cpu/NovaCore/store"
)

func main() {
	cfg, err := novacore.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store).Msg("open state store")
	}

	generator := novacore.NewHTTPGenerator(novacore.HTTPGeneratorConfig{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})

	brain := novacore.NewBrainLoop(novacore.BrainConfig{
		Baseline:     novacore.Emotion(cfg.Baseline),
		Stage:        novacore.RelationshipStage(cfg.Stage),
		PersonaBrief: cfg.PersonaBrief,
		AllowNSFW:    cfg.AllowNSFW,
		Seed:         cfg.Seed,
		Generator:    generator,
		Store:        st,
		Logger:       log,
		Speak: func(text string, _ *novacore.Intent) {
			fmt.Printf("\r%s\n> ", text)
		},
	})

	ticker := novacore.NewIdleTicker(brain, cfg.TickInterval)
	ticker.Start()
	defer func() {
		ticker.Stop()
		brain.Close()
	}()

	brain.ScheduleGreeting()

	log.Info().Str("store", cfg.Store).Str("model", cfg.LLMModel).Msg("brainstem online, type 'exit' to quit")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			fmt.Print("> ")
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply := brain.ProcessTurn(context.Background(), text)
		fmt.Printf("%s\n> ", reply)
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin closed")
	}
}

func openStore(cfg *novacore.Config) (novacore.StateStore, error) {
	switch cfg.Store {
	case "", "memory":
		return novacore.NewMemoryStateStore(), nil
	case "file":
		return store.NewFileStateStore(cfg.StatePath)
	case "sqlite":
		return store.OpenSQLiteStateStore(cfg.SQLitePath)
	case "postgres":
		return store.OpenPostgresStateStore(cfg.PostgresDSN)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return store.NewRedisStateStore(client), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
