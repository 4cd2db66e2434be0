package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/repositories"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// History lists locally recorded submissions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewPostRepository(db)

	criteria := map[string]any{}
	if status := cmd.String("status"); status != "" {
		criteria["status"] = status
	}
	if platform := cmd.String("platform"); platform != "" {
		criteria["platform"] = platform
	}

	records, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cmd.Bool("json") {
		rows := make([]map[string]any, 0, len(records))
		for _, record := range records {
			rows = append(rows, map[string]any{
				"id":            record.ID(),
				"title":         record.Title(),
				"platforms":     record.Platforms(),
				"status":        record.Status(),
				"viral_score":   record.ViralScore(),
				"schedule_time": record.ScheduleTime(),
				"created_at":    record.CreatedAt(),
			})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Submission History")
	if len(records) == 0 {
		r.writePlain("No recorded submissions\n")
		return nil
	}

	for _, record := range records {
		r.writePlain("%s — %s\n", record.Title(), record.Status())
		r.writePlain("   %s · %s\n", formatter.Platforms(record.Platforms()), formatter.RelativeTime(record.CreatedAt()))
		if record.ViralScore() > 0 {
			r.writePlain("   viral score: %s\n", formatter.Score(record.ViralScore()))
		}
		if record.ScheduleTime() != "" {
			r.writePlain("   scheduled: %s\n", record.ScheduleTime())
		}
	}

	return nil
}

// historyCommand reads the local submission history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List locally recorded submissions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only records with this status (published, scheduled)",
			},
			&cli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "Only records targeting this platform",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.History,
	}
}
