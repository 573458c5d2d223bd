package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/adamatan/mbta/internal/board"
	"github.com/adamatan/mbta/internal/config"
	"github.com/adamatan/mbta/internal/display"
	"github.com/adamatan/mbta/internal/mbta"
)

func main() {
	// .env is optional; deployments can set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	// CLI flags
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.StringVar(&cfg.StopsFile, "stops", cfg.StopsFile, "Path to the stops YAML file")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	groups, err := config.LoadStops(cfg.StopsFile)
	if err != nil {
		logger.Error("failed to load stops file", "path", cfg.StopsFile, "error", err)
		os.Exit(1)
	}

	client := mbta.NewClient(cfg.BaseURL, cfg.APIKey, logger)
	svc := board.New(client, logger)
	now := time.Now()

	// One fetch-and-merge task per stop, joined before any output. A 429 on
	// any fetch cancels the rest of the run instead of printing partial data.
	results := make([][][]board.Row, len(groups))
	g, ctx := errgroup.WithContext(context.Background())
	for gi, group := range groups {
		results[gi] = make([][]board.Row, len(group.Stops))
		for si, entry := range group.Stops {
			gi, si := gi, si
			stop := board.Stop{
				Name:        entry.Name,
				RouteID:     entry.Route,
				StopID:      entry.Stop,
				DirectionID: entry.Direction,
				IsOrigin:    entry.Origin,
			}
			g.Go(func() error {
				rows, err := svc.Rows(ctx, stop, now)
				if err != nil {
					if errors.Is(err, mbta.ErrRateLimited) {
						return err
					}
					logger.Error("fetching departures", "stop", stop.Name, "error", err)
					return nil
				}
				results[gi][si] = rows
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  MBTA API rate limit exceeded. Please wait a moment and try again.")
		os.Exit(1)
	}

	for gi, group := range groups {
		columns := make([]display.Column, len(group.Stops))
		for si, entry := range group.Stops {
			columns[si] = display.Column{Name: entry.Name, Rows: results[gi][si]}
		}
		fmt.Print(display.RenderGrid(group.Title+":", columns, now))
	}
}
