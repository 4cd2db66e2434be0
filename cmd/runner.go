package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	"github.com/wilkerbruno/videos-automacoes/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	accounts   *services.AccountService
	publish    *services.PublishService
	content    *services.ContentService
	schedule   *services.ScheduleService
	analytics  *services.AnalyticsService
	engine     *tasks.PublishEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.API.BaseURL, opts.HTTPClient, opts.Logger)
	}

	accounts := services.NewAccountService(opts.API, opts.Logger)
	publish := services.NewPublishService(opts.API, opts.Logger)
	content := services.NewContentService(opts.API, opts.Logger)
	schedule := services.NewScheduleService(opts.API, opts.Logger)
	analytics := services.NewAnalyticsService(opts.API, opts.Logger)

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		accounts:   accounts,
		publish:    publish,
		content:    content,
		schedule:   schedule,
		analytics:  analytics,
		engine:     tasks.NewPublishEngine(publish, content, nil, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, propagating it to nothing else;
// services keep the logger they were built with.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, uploadCommand, accountsCommand, scheduleCommand, analyticsCommand, contentCommand, historyCommand, dashboardCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// parsePlatforms converts a comma-separated platform list into typed values.
func parsePlatforms(s string) ([]models.Platform, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: at least one platform required", shared.ErrNoPlatforms)
	}

	var platforms []models.Platform
	for _, part := range strings.Split(s, ",") {
		p, err := models.ParsePlatform(part)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// parseKeyValues converts repeated "key=value" flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", shared.ErrInvalidInput, pair)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}
