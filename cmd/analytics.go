package main

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
)

const analyticsBarWidth = 30

// Analytics fetches and prints the performance summary for a time range.
func (r *Runner) Analytics(ctx context.Context, cmd *cli.Command) error {
	timeRange := cmd.String("range")

	summary, err := r.analytics.Summary(ctx, timeRange)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Analytics")
	r.writePlain("Views: %s  Likes: %s  Shares: %s  Posts: %s\n",
		formatter.Abbreviate(summary.Summary.Views),
		formatter.Abbreviate(summary.Summary.Likes),
		formatter.Abbreviate(summary.Summary.Shares),
		formatter.Abbreviate(summary.Summary.Posts),
	)

	if len(summary.Chart.Labels) > 0 {
		var max float64
		for _, v := range summary.Chart.Views {
			if v > max {
				max = v
			}
		}

		r.writePlainln("Views over time:")
		for i, label := range summary.Chart.Labels {
			if i >= len(summary.Chart.Views) {
				break
			}
			v := summary.Chart.Views[i]
			r.writePlain("%-12s %s %s\n", label, formatter.Bar(v, max, analyticsBarWidth), formatter.Abbreviate(int64(v)))
		}
	}

	if len(summary.PlatformBreakdown) > 0 {
		platforms := make([]string, 0, len(summary.PlatformBreakdown))
		for name := range summary.PlatformBreakdown {
			platforms = append(platforms, name)
		}
		sort.Strings(platforms)

		r.writePlainln("Per platform:")
		for _, name := range platforms {
			stats := summary.PlatformBreakdown[name]
			r.writePlain("%-10s views %s, engagement %.1f%%\n", name, formatter.Abbreviate(stats.Views), stats.Engagement)
		}
	}

	if len(summary.Insights) > 0 {
		r.writePlainln("Insights:")
		for _, insight := range summary.Insights {
			r.writePlain("• %s: %s\n", insight.Title, insight.Description)
		}
	}

	return nil
}

// analyticsCommand fetches aggregated performance data.
func analyticsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "analytics",
		Aliases: []string{"stats"},
		Usage:   "Show performance analytics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "range",
				Usage: "Time range: 7d, 30d, or 90d",
				Value: "30d",
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
		Action: r.Analytics,
	}
}
