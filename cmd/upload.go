package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/repositories"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	"github.com/wilkerbruno/videos-automacoes/internal/tasks"
)

// Upload runs a full submission: verify files, optionally generate AI
// content, upload to the selected platforms, and record local history.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	platforms, err := parsePlatforms(cmd.String("platforms"))
	if err != nil {
		return err
	}

	category := cmd.String("category")
	if category == "" {
		category = r.config.Upload.DefaultCategory
	}

	opts := tasks.PublishOpts{
		Title:           cmd.String("title"),
		Category:        category,
		Platforms:       platforms,
		Files:           cmd.StringSlice("file"),
		GenerateContent: cmd.Bool("generate"),
		ScheduleTime:    cmd.String("schedule"),
		MaxFileBytes:    r.config.Upload.MaxFileBytes,
	}

	engine := r.engine
	if db, err := shared.NewDatabase(r.config.Database.Path); err == nil {
		defer db.Close()
		engine = tasks.NewPublishEngine(r.publish, r.content, repositories.NewPostRepository(db), r.logger)
	} else {
		r.logger.Warn("history database unavailable, skipping local record", "error", err)
	}

	r.logger.Info("starting upload", "title", opts.Title, "files", len(opts.Files), "platforms", len(platforms))
	r.writePlain("Submitting post...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.VerifyFiles:
				r.writePlain("📁 %s\n", update.Message)
			case tasks.GenerateContent:
				r.writePlain("✨ %s\n", update.Message)
			case tasks.UploadPost:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.RecordHistory:
				r.writePlain("💾 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Publish(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Result, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Post Submitted")
	for _, f := range result.Files {
		r.writePlain("File: %s (%s, %s)\n", f.Name, f.MIME, formatter.FileSize(f.Size))
	}
	r.writePlain("Platforms: %s\n", formatter.Platforms(models.PlatformStrings(platforms)))
	if opts.ScheduleTime != "" {
		r.writePlain("Scheduled for: %s\n", opts.ScheduleTime)
	}
	if result.Result.ViralScore > 0 {
		r.writePlain("Viral score: %s\n", formatter.Score(result.Result.ViralScore))
	}
	if result.Content != nil {
		r.writePlain("\nAI description: %s\n", result.Content.Description)
		if line := formatter.Hashtags(result.Content.Hashtags); line != "" {
			r.writePlain("Hashtags: %s\n", line)
		}
	}
	if result.Result.Message != "" {
		r.writePlain("\n%s\n", result.Result.Message)
	}

	return nil
}

// uploadCommand submits videos to the publishing backend.
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "upload",
		Aliases: []string{"post"},
		Usage:   "Upload videos and publish or schedule a post",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Video file to upload (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Post title",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Content category",
			},
			&cli.StringFlag{
				Name:     "platforms",
				Aliases:  []string{"p"},
				Usage:    "Comma-separated target platforms (youtube,instagram,tiktok,kawai)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "schedule",
				Usage: "Schedule time (e.g. 2026-01-15T10:00), empty posts now",
			},
			&cli.BoolFlag{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Generate AI description and hashtags before uploading",
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
		Action: r.Upload,
	}
}
