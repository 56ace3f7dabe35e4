package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"path/filepath"
	"time"

	"mangareel/internal/catalog"
	"mangareel/internal/config"
	"mangareel/internal/delivery"
	"mangareel/internal/history"
	"mangareel/internal/ledger"
	"mangareel/internal/render"
	"mangareel/internal/services"
	"mangareel/internal/services/imagesearch"
	"mangareel/internal/services/tts"
)

// Renderer produces the final video for a selected batch.
type Renderer interface {
	Render(ctx context.Context, batch []catalog.Item, title, outputPath string) (*render.Result, error)
}

// Runner drives one production cycle: select, render, commit, record,
// deliver.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer Renderer
	delivery delivery.Service
	rng      *rand.Rand
}

// Option customizes a Runner, mainly for tests.
type Option func(*Runner)

// WithRenderer replaces the ffmpeg render pipeline.
func WithRenderer(r Renderer) Option {
	return func(run *Runner) {
		run.renderer = r
	}
}

// WithDelivery replaces the email delivery service.
func WithDelivery(svc delivery.Service) Option {
	return func(run *Runner) {
		run.delivery = svc
	}
}

// WithRand fixes the random source used for selection and title choice.
func WithRand(rng *rand.Rand) Option {
	return func(run *Runner) {
		run.rng = rng
	}
}

// New wires the production services from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	run := &Runner{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(run)
	}

	if run.renderer == nil {
		var synth tts.Synthesizer
		if cfg.TTS.Enabled {
			client, err := tts.New(cfg.TTS.BaseURL, cfg.TTS.Language, time.Duration(cfg.TTS.RequestTimeout)*time.Second)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, "runner", "init", "tts client", err)
			}
			synth = client
		}
		search := imagesearch.New(cfg.ImageSearch.APIKey, cfg.ImageSearch.BaseURL,
			time.Duration(cfg.ImageSearch.RequestTimeout)*time.Second)
		run.renderer = render.NewPipeline(cfg, logger, synth, search,
			render.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.ImageSearch.RequestTimeout) * time.Second}))
	}
	if run.delivery == nil {
		run.delivery = delivery.NewService(cfg, logger)
	}
	return run, nil
}

// Result summarizes one completed (or previewed) run.
type Result struct {
	RunID     string
	Date      string
	Title     string
	VideoPath string
	ItemIDs   []string
	Reset     bool
	Delivered bool
	DryRun    bool
}

// Run executes a full cycle for the given date. An empty date means today.
// With dryRun set the selection is reported but nothing is rendered,
// committed, or delivered.
func (r *Runner) Run(ctx context.Context, date string, dryRun bool) (*Result, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "prepare", "ensure directories", err)
	}

	items, err := catalog.Load(r.cfg.Paths.CatalogPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "catalog", r.cfg.Paths.CatalogPath, err)
	}
	if err := catalog.Validate(items); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "catalog", "validate", err)
	}

	guard, err := ledger.Acquire(r.cfg.Paths.LedgerPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := guard.Release(); releaseErr != nil {
			r.logger.Warn("release ledger lock", "error", releaseErr)
		}
	}()

	used, err := ledger.Load(r.cfg.Paths.LedgerPath)
	if err != nil {
		return nil, err
	}

	batch, reset, err := ledger.SelectBatch(items, used, r.cfg.Video.BatchSize, r.rng)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientCatalog) {
			return nil, fmt.Errorf("%w: catalog has %d items, need %d", err, len(items), r.cfg.Video.BatchSize)
		}
		return nil, err
	}
	if reset {
		r.logger.Info("catalog exhausted, rotation restarted", "catalog", len(items), "used", used.Len())
	}

	title := r.pickTitle()
	outputPath := filepath.Join(r.cfg.Paths.OutputDir, fmt.Sprintf("daily_%s.mp4", date))
	result := &Result{
		Date:      date,
		Title:     title,
		VideoPath: outputPath,
		ItemIDs:   catalog.IDs(batch),
		Reset:     reset,
		DryRun:    dryRun,
	}
	r.logger.Info("batch selected",
		"date", date,
		"items", result.ItemIDs,
		"reset", reset,
		"dry_run", dryRun)

	if dryRun {
		return result, nil
	}

	rendered, err := r.renderer.Render(ctx, batch, title, outputPath)
	if err != nil {
		return nil, err
	}

	// Commit strictly after the render succeeded so a failed run never
	// consumes catalog entries. A reset discards the previous cycle.
	base := used
	if reset {
		base = ledger.NewSet()
	}
	committed := ledger.Commit(base, batch)
	if err := committed.Store(r.cfg.Paths.LedgerPath); err != nil {
		return nil, err
	}

	store, err := history.Open(r.cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runID, err := store.Record(ctx, history.Run{
		Date:        date,
		Title:       title,
		VideoPath:   rendered.VideoPath,
		ItemIDs:     result.ItemIDs,
		LedgerReset: reset,
	})
	if err != nil {
		return nil, err
	}
	result.RunID = runID

	// Delivery failures are logged but never fail the run; the video and
	// ledger commit already exist on disk. A skipped (unconfigured) delivery
	// is not recorded as delivered.
	switch sent, err := r.delivery.Send(ctx, rendered, r.cfg.Content.Hashtags); {
	case err != nil:
		r.logger.Warn("delivery failed", "error", err, "fatal", services.Fatal(err))
	case !sent:
		r.logger.Info("delivery skipped", "run_id", runID)
	default:
		result.Delivered = true
		if err := store.MarkDelivered(ctx, runID); err != nil {
			r.logger.Warn("mark delivered", "error", err)
		}
	}

	r.logger.Info("run complete",
		"run_id", runID,
		"video", rendered.VideoPath,
		"delivered", result.Delivered)
	return result, nil
}

func (r *Runner) pickTitle() string {
	titles := r.cfg.Content.Titles
	if len(titles) == 0 {
		return "Today's Manga Picks"
	}
	rng := r.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return titles[rng.Intn(len(titles))]
}
