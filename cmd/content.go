package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
)

// ContentGenerate requests an AI description, hashtags, and viral score.
func (r *Runner) ContentGenerate(ctx context.Context, cmd *cli.Command) error {
	platforms, err := parsePlatforms(cmd.String("platforms"))
	if err != nil {
		return err
	}

	content, err := r.content.Generate(ctx, cmd.String("title"), cmd.String("category"), platforms)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(content, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Generated Content")
	r.writePlain("Description: %s\n", content.Description)
	if line := formatter.Hashtags(content.Hashtags); line != "" {
		r.writePlain("Hashtags: %s\n", line)
	}
	r.writePlain("Viral score: %s\n", formatter.Score(content.ViralScore))

	for _, p := range platforms {
		variant, ok := content.PlatformSpecific[string(p)]
		if !ok {
			continue
		}
		r.writePlainln("%s variant:", p.Display())
		if variant.Caption != "" {
			r.writePlain("Caption: %s\n", variant.Caption)
		}
		if variant.Description != "" {
			r.writePlain("Description: %s\n", variant.Description)
		}
		if line := formatter.Hashtags(variant.Hashtags); line != "" {
			r.writePlain("Hashtags: %s\n", line)
		}
	}

	return nil
}

// ContentAnalyze scores a draft post and prints improvement suggestions.
func (r *Runner) ContentAnalyze(ctx context.Context, cmd *cli.Command) error {
	platforms, err := parsePlatforms(cmd.String("platforms"))
	if err != nil {
		return err
	}

	analysis, err := r.content.Analyze(ctx, services.AnalyzeRequest{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Category:    cmd.String("category"),
		Platforms:   models.PlatformStrings(platforms),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(analysis, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Viral Analysis")
	r.writePlain("Score: %s\n", formatter.Score(analysis.ViralScore))

	if len(analysis.Strengths) > 0 {
		r.writePlainln("Strengths:")
		for _, s := range analysis.Strengths {
			r.writePlain("✓ %s\n", s)
		}
	}
	if len(analysis.Improvements) > 0 {
		r.writePlainln("Improvements:")
		for _, s := range analysis.Improvements {
			r.writePlain("• %s\n", s)
		}
	}
	for _, p := range platforms {
		if slots, ok := analysis.OptimalTiming[string(p)]; ok && len(slots) > 0 {
			r.writePlain("\nBest times for %s: %s\n", p.Display(), formatter.Platforms(slots))
		}
	}

	return nil
}

// ContentTemplates lists the server's content templates.
func (r *Runner) ContentTemplates(ctx context.Context, cmd *cli.Command) error {
	templates, err := r.content.Templates(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(templates, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Content Templates")
	if len(templates) == 0 {
		r.writePlain("No templates available\n")
		return nil
	}

	for _, tmpl := range templates {
		r.writePlain("%s — %s (%s, score %d)\n", tmpl.ID, tmpl.Name, tmpl.Category, tmpl.ViralScore)
		if len(tmpl.Variables) > 0 {
			r.writePlain("   variables: %s\n", formatter.Platforms(tmpl.Variables))
		}
	}

	return nil
}

// ContentFromTemplate fills a template's variables and generates content.
func (r *Runner) ContentFromTemplate(ctx context.Context, cmd *cli.Command) error {
	platforms, err := parsePlatforms(cmd.String("platforms"))
	if err != nil {
		return err
	}

	variables, err := parseKeyValues(cmd.StringSlice("var"))
	if err != nil {
		return err
	}

	content, err := r.content.FromTemplate(ctx, cmd.String("id"), variables, platforms)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(content, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Generated Content")
	if content.Title != "" {
		r.writePlain("Title: %s\n", content.Title)
	}
	r.writePlain("Description: %s\n", content.Description)
	if line := formatter.Hashtags(content.Hashtags); line != "" {
		r.writePlain("Hashtags: %s\n", line)
	}
	r.writePlain("Viral score: %s\n", formatter.Score(content.ViralScore))

	return nil
}

// contentCommand handles AI content operations.
func contentCommand(r *Runner) *cli.Command {
	platformsFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:     "platforms",
			Aliases:  []string{"p"},
			Usage:    "Comma-separated target platforms",
			Required: true,
		}
	}
	jsonFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		}
	}

	return &cli.Command{
		Name:    "content",
		Aliases: []string{"ai"},
		Usage:   "AI content generation and analysis",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a description, hashtags, and viral score",
				Flags: append([]cli.Flag{
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
					platformsFlag(),
				}, jsonFlags()...),
				Action: r.ContentGenerate,
			},
			{
				Name:  "analyze",
				Usage: "Score a draft post and suggest improvements",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Post title",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Post description",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Content category",
					},
					platformsFlag(),
				}, jsonFlags()...),
				Action: r.ContentAnalyze,
			},
			{
				Name:   "templates",
				Usage:  "List available content templates",
				Flags:  jsonFlags(),
				Action: r.ContentTemplates,
			},
			{
				Name:  "from-template",
				Usage: "Generate content from a template",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Template ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "var",
						Usage: "Template variable as key=value (repeatable)",
					},
					platformsFlag(),
				}, jsonFlags()...),
				Action: r.ContentFromTemplate,
			},
		},
	}
}
