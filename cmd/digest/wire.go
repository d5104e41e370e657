package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/config"
	"github.com/dusk-indust/digest/internal/digest"
	"github.com/dusk-indust/digest/internal/export"
	"github.com/dusk-indust/digest/internal/llm"
	"github.com/dusk-indust/digest/internal/mcptools"
	"github.com/dusk-indust/digest/internal/nws"
	"github.com/dusk-indust/digest/internal/sections"
	"github.com/dusk-indust/digest/internal/telegram"
)

// buildSections binds the five producers to the run configuration.
func buildSections(cfg *config.Config, logger *zap.Logger) (sections.Set, error) {
	claude, err := llm.NewClaudeFromAPIKey(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	if err != nil {
		return sections.Set{}, fmt.Errorf("claude client: %w", err)
	}

	forecaster := nws.NewClient(
		nws.WithBaseURL(cfg.NWSBaseURL),
		nws.WithUserAgent(cfg.NWSUserAgent),
		nws.WithTimeout(cfg.HTTPTimeout),
	)

	newsSearcher, talkSearcher := buildSearchers(cfg, logger)

	return sections.Set{
		Calendar: sections.NewCalendar(sections.CalendarConfig{
			Command: cfg.CalendarCommand,
			Logger:  logger.Named("calendar"),
		}),
		Weather: sections.NewWeather(sections.WeatherConfig{
			Forecaster: forecaster,
			Advisor:    claude,
			Latitude:   cfg.Latitude,
			Longitude:  cfg.Longitude,
			Logger:     logger.Named("weather"),
		}),
		AINews:        sections.NewSearch(sections.AINewsSpec, newsSearcher, nil, logger.Named("news")),
		TalkingPieces: sections.NewSearch(sections.TalkingPiecesSpec, talkSearcher, nil, logger.Named("talking")),
		History:       sections.NewHistory(claude, nil, logger.Named("history")),
	}, nil
}

// buildSearchers picks z.ai endpoints: AI news prefers the paid web search
// key, talking pieces prefer the coding key. Either may be nil when no key
// is configured, in which case the section reports itself unavailable.
func buildSearchers(cfg *config.Config, logger *zap.Logger) (news, talk llm.Searcher) {
	newSearcher := func(key, baseURL string) llm.Searcher {
		if key == "" {
			return nil
		}
		z, err := llm.NewZAIFromAPIKey(key, baseURL, cfg.ZAIModel)
		if err != nil {
			logger.Warn("z.ai client unavailable", zap.Error(err))
			return nil
		}
		return z
	}

	paid := newSearcher(cfg.ZAIWebSearchAPIKey, cfg.ZAISearchURL)
	coding := newSearcher(cfg.ZAIAPIKey, cfg.ZAIBaseURL)

	news, talk = paid, coding
	if news == nil {
		news = coding
	}
	if talk == nil {
		talk = paid
	}
	return news, talk
}

func buildRunner(cfg *config.Config, sink digest.Sink, logger *zap.Logger) (*digest.Runner, error) {
	set, err := buildSections(cfg, logger)
	if err != nil {
		return nil, err
	}

	agg := digest.NewAggregator(
		digest.WithLogger(logger.Named("aggregate")),
		digest.WithProgress(func(ev digest.ProgressEvent) {
			logger.Debug(digest.FormatProgress(ev))
		}),
	)

	return digest.NewRunner(digest.RunnerConfig{
		Producers:  set.Producers(),
		Aggregator: agg,
		Sink:       sink,
		ChunkLimit: cfg.ChunkLimit,
		Logger:     logger,
	}), nil
}

func runDigest(ctx context.Context, cfg *config.Config, flags cliFlags, out io.Writer, logger *zap.Logger) error {
	logger.Info("starting daily digest", zap.Bool("dry_run", flags.DryRun))

	if flags.DryRun {
		runner, err := buildRunner(cfg, nil, logger)
		if err != nil {
			return err
		}
		doc, chunks := runner.Compose(ctx)
		if flags.JSON {
			if err := export.WriteJSON(out, export.ExportDigest(doc, chunks, time.Now())); err != nil {
				return err
			}
		} else {
			printChunks(out, chunks)
		}
		logger.Info("daily digest complete (dry run)")
		return nil
	}

	sink, err := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID,
		telegram.WithTimeout(cfg.HTTPTimeout),
		telegram.WithSendInterval(cfg.SendInterval),
	)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, sink, logger)
	if err != nil {
		return err
	}
	if err := runner.Run(ctx); err != nil {
		logger.Error("fatal error in daily digest", zap.Error(err))
		return err
	}

	logger.Info("daily digest complete")
	return nil
}

func serveMCP(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	runner, err := buildRunner(cfg, nil, logger)
	if err != nil {
		return err
	}
	logger.Info("serving digest MCP tools on stdio")
	return mcptools.RunStdio(ctx, mcptools.NewDigestMCPServer(runner, version))
}
