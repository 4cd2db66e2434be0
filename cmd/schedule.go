package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
)

// ScheduleList shows pending scheduled posts, optionally filtered.
func (r *Runner) ScheduleList(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.String("platform")
	date := cmd.String("date")

	posts, err := r.schedule.List(ctx, platform, date)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(posts, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Scheduled Posts")
	if len(posts) == 0 {
		r.writePlain("No scheduled posts\n")
		return nil
	}

	for i, post := range posts {
		r.writePlain("%d. %s\n", i+1, post.Title)
		r.writePlain("   %s · %s · %s\n", formatter.ScheduleTime(post), formatter.Platforms(post.Platforms), post.Status)
		r.writePlain("   id: %s\n", post.ID)
	}

	return nil
}

// ScheduleCancel cancels a scheduled post by id.
func (r *Runner) ScheduleCancel(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")

	r.logger.Info("cancelling scheduled post", "id", id)
	if err := r.schedule.Cancel(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ scheduled post cancelled\n")
	return nil
}

// scheduleCommand handles scheduled post operations.
func scheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "schedule",
		Aliases: []string{"sched"},
		Usage:   "Inspect and manage scheduled posts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List scheduled posts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "platform",
						Aliases: []string{"p"},
						Usage:   "Only posts targeting this platform",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Only posts scheduled on this date (YYYY-MM-DD)",
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
				Action: r.ScheduleList,
			},
			{
				Name:  "cancel",
				Usage: "Cancel a scheduled post",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.ScheduleCancel,
			},
		},
	}
}
