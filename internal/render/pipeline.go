package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"mangareel/internal/catalog"
	"mangareel/internal/config"
	"mangareel/internal/services"
	"mangareel/internal/services/imagesearch"
	"mangareel/internal/services/tts"
)

// SlideMeta describes one rendered slide for delivery and the run record.
type SlideMeta struct {
	Title       string
	Description string
	ImagePath   string
	Narrated    bool
}

// Result is the output of a successful render.
type Result struct {
	VideoPath string
	Title     string
	Slides    []SlideMeta
}

// Pipeline turns a selected batch into a finished vertical video. Individual
// slide assets degrade gracefully (placeholder covers, silent slides); only a
// failed ffmpeg invocation aborts the render.
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	synth      tts.Synthesizer
	search     imagesearch.Searcher
	httpClient *http.Client
	runner     Runner
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithRunner overrides the command runner (stubbed in tests).
func WithRunner(r Runner) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithHTTPClient overrides the client used for cover downloads.
func WithHTTPClient(client *http.Client) PipelineOption {
	return func(p *Pipeline) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewPipeline builds a render pipeline. synth may be nil to disable narration;
// search may be nil to skip cover lookup.
func NewPipeline(cfg *config.Config, logger *slog.Logger, synth tts.Synthesizer, search imagesearch.Searcher, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		cfg:    cfg,
		logger: logger.With("component", "render"),
		synth:  synth,
		search: search,
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type slidePlan struct {
	name     string
	image    string
	audio    string
	duration float64
}

// Render produces the video at outputPath from the batch. The ledger must not
// be committed unless Render returns nil.
func (p *Pipeline) Render(ctx context.Context, batch []catalog.Item, title, outputPath string) (*Result, error) {
	if len(batch) == 0 {
		return nil, services.Wrap(services.ErrRender, "render", "plan", "empty batch", nil)
	}
	if err := os.MkdirAll(p.cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "workspace", "create output dir", err)
	}
	workdir, err := os.MkdirTemp(p.cfg.Paths.OutputDir, "work-*")
	if err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "workspace", "create work dir", err)
	}

	style := slideStyle{
		fontPath: p.cfg.Video.FontPath,
		width:    p.cfg.Video.Width,
		height:   p.cfg.Video.Height,
	}

	plans := make([]slidePlan, 0, len(batch)+2)
	slides := make([]SlideMeta, 0, len(batch))

	titlePNG := filepath.Join(workdir, "title.png")
	if err := savePNG(textCard(title, style, 72), titlePNG); err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "title slide", "", err)
	}
	plans = append(plans, slidePlan{
		name:     "title",
		image:    titlePNG,
		audio:    p.narrate(ctx, title, filepath.Join(workdir, "tts_title.mp3")),
		duration: p.cfg.Video.TitleSeconds,
	})

	for i, item := range batch {
		itemTitle := displayTitle(item.ID)
		p.logger.Info("rendering slide", "title", itemTitle)

		cover := p.coverImage(ctx, item, i+1, workdir)
		cover = overlayDescription(cover, item.Description, p.cfg.Video.FontPath)

		coverPNG := filepath.Join(workdir, fmt.Sprintf("cover_%d.png", i+1))
		if err := savePNG(cover, coverPNG); err != nil {
			return nil, services.Wrap(services.ErrRender, "render", "cover slide", item.ID, err)
		}
		slidePNG := filepath.Join(workdir, fmt.Sprintf("slide_%d.png", i+1))
		if err := savePNG(itemSlide(cover, itemTitle, style), slidePNG); err != nil {
			return nil, services.Wrap(services.ErrRender, "render", "item slide", item.ID, err)
		}

		audio := p.narrate(ctx, fmt.Sprintf("%s. %s", itemTitle, item.Description),
			filepath.Join(workdir, fmt.Sprintf("tts_%d.mp3", i+1)))
		plans = append(plans, slidePlan{
			name:     fmt.Sprintf("item %d", i+1),
			image:    slidePNG,
			audio:    audio,
			duration: p.cfg.Video.ItemSeconds,
		})
		slides = append(slides, SlideMeta{
			Title:       itemTitle,
			Description: item.Description,
			ImagePath:   coverPNG,
			Narrated:    audio != "",
		})
	}

	if outro := p.cfg.Content.Outro; outro != "" {
		outroPNG := filepath.Join(workdir, "outro.png")
		if err := savePNG(textCard(outro, style, 54), outroPNG); err != nil {
			return nil, services.Wrap(services.ErrRender, "render", "outro slide", "", err)
		}
		plans = append(plans, slidePlan{
			name:     "outro",
			image:    outroPNG,
			audio:    p.narrate(ctx, outro, filepath.Join(workdir, "tts_outro.mp3")),
			duration: p.cfg.Video.OutroSeconds,
		})
	}

	clips := make([]string, 0, len(plans))
	for i, plan := range plans {
		clip := filepath.Join(workdir, fmt.Sprintf("seg_%d.mp4", i))
		seg := Segment{
			Image:      plan.image,
			Audio:      plan.audio,
			Background: existingFile(p.cfg.Video.Background),
			Overlay:    existingFile(p.cfg.Video.Overlay),
			Duration:   plan.duration,
		}
		args := BuildSegmentArgs(p.cfg.Video, seg, clip)
		if stderr, err := p.runner.Run(ctx, p.cfg.FFmpegBinary(), args); err != nil {
			return nil, services.Wrap(services.ErrRender, "render", plan.name, stderrTail(stderr), err)
		}
		clips = append(clips, clip)
	}

	listPath := filepath.Join(workdir, "concat.txt")
	if err := WriteConcatList(listPath, clips); err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "concat list", "", err)
	}
	if stderr, err := p.runner.Run(ctx, p.cfg.FFmpegBinary(), BuildConcatArgs(listPath, outputPath)); err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "concat", stderrTail(stderr), err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return nil, services.Wrap(services.ErrRender, "render", "concat", "output missing", err)
	}

	p.logger.Info("video produced", "output", outputPath, "slides", len(plans))
	return &Result{VideoPath: outputPath, Title: title, Slides: slides}, nil
}

// narrate synthesizes narration to path, returning the path or "" when
// narration is unavailable. TTS failures degrade to a silent slide.
func (p *Pipeline) narrate(ctx context.Context, text, path string) string {
	if p.synth == nil {
		return ""
	}
	audio, err := p.synth.Synthesize(ctx, text)
	if err != nil {
		p.logger.Warn("narration failed, slide will be silent", "error", err)
		return ""
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		p.logger.Warn("narration write failed, slide will be silent", "error", err)
		return ""
	}
	return path
}

// coverImage obtains cover art for an item: search result, then the
// configured placeholder, then a generated text card.
func (p *Pipeline) coverImage(ctx context.Context, item catalog.Item, index int, workdir string) image.Image {
	if p.search != nil {
		url, err := p.search.Search(ctx, item.ID)
		if err != nil {
			p.logger.Warn("cover search failed", "title", item.ID, "error", err)
		} else if url != "" {
			orig := filepath.Join(workdir, fmt.Sprintf("cover_%d_orig.img", index))
			if err := imagesearch.Download(ctx, p.httpClient, url, orig); err != nil {
				p.logger.Warn("cover download failed", "title", item.ID, "error", err)
			} else if img, err := imaging.Open(orig); err != nil {
				p.logger.Warn("cover decode failed", "title", item.ID, "error", err)
			} else {
				return img
			}
		}
	}

	if placeholder := existingFile(p.cfg.Video.Placeholder); placeholder != "" {
		if img, err := imaging.Open(placeholder); err == nil {
			return img
		}
		p.logger.Warn("placeholder unreadable, generating text cover", "path", p.cfg.Video.Placeholder)
	}
	return fallbackCover(displayTitle(item.ID), p.cfg.Video.FontPath)
}

func existingFile(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

func stderrTail(stderr string) string {
	const max = 400
	if len(stderr) <= max {
		return stderr
	}
	return stderr[len(stderr)-max:]
}
