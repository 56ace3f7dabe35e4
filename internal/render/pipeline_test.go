package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mangareel/internal/catalog"
	"mangareel/internal/render"
	"mangareel/internal/services"
	"mangareel/internal/testsupport"
)

type fakeRunner struct {
	calls  [][]string
	failOn string
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	output := args[len(args)-1]
	if f.failOn != "" && strings.Contains(output, f.failOn) {
		return "ffmpeg exploded", errors.New("exit status 1")
	}
	if err := os.WriteFile(output, []byte("clip"), 0o644); err != nil {
		return "", err
	}
	return "", nil
}

type fakeSynth struct {
	err     error
	failFor string
	calls   []string
}

func (f *fakeSynth) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if f.failFor != "" && strings.Contains(text, f.failFor) {
		return nil, errors.New("synthesis refused")
	}
	return []byte("mp3"), nil
}

type fakeSearch struct {
	url string
	err error
}

func (f fakeSearch) Search(context.Context, string) (string, error) {
	return f.url, f.err
}

func batch(ids ...string) []catalog.Item {
	items := make([]catalog.Item, len(ids))
	for i, id := range ids {
		items[i] = catalog.Item{ID: id, Description: "about " + id}
	}
	return items
}

func TestRenderProducesVideoAndMetadata(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{}
	synth := &fakeSynth{}
	pipeline := render.NewPipeline(cfg, nil, synth, fakeSearch{}, render.WithRunner(runner))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	result, err := pipeline.Render(context.Background(), batch("berserk", "one piece"), "Top picks", output)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if result.VideoPath != output {
		t.Fatalf("unexpected video path: %q", result.VideoPath)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output written: %v", err)
	}
	if result.Title != "Top picks" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
	if len(result.Slides) != 2 {
		t.Fatalf("expected 2 item slides, got %d", len(result.Slides))
	}
	if result.Slides[0].Title != "Berserk" {
		t.Fatalf("expected title-cased slide title, got %q", result.Slides[0].Title)
	}
	if !result.Slides[0].Narrated {
		t.Fatal("expected narrated slide")
	}
	if _, err := os.Stat(result.Slides[0].ImagePath); err != nil {
		t.Fatalf("expected slide image on disk: %v", err)
	}

	// title + 2 items + outro segments, then concat.
	if len(runner.calls) != 5 {
		t.Fatalf("expected 5 ffmpeg invocations, got %d", len(runner.calls))
	}
	// Narration: title, both items, outro.
	if len(synth.calls) != 4 {
		t.Fatalf("expected 4 narration calls, got %d: %v", len(synth.calls), synth.calls)
	}
	if synth.calls[1] != "Berserk. about berserk" {
		t.Fatalf("unexpected narration text: %q", synth.calls[1])
	}
}

func TestRenderTTSFailureDegradesToSilentSlides(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := render.NewPipeline(cfg, nil, &fakeSynth{err: errors.New("quota")}, nil,
		render.WithRunner(&fakeRunner{}))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	result, err := pipeline.Render(context.Background(), batch("berserk"), "Top picks", output)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Slides[0].Narrated {
		t.Fatal("expected silent slide after TTS failure")
	}
}

func TestRenderPartialTTSFailureKeepsStreamsUniform(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{}
	synth := &fakeSynth{failFor: "monster"}
	pipeline := render.NewPipeline(cfg, nil, synth, nil, render.WithRunner(runner))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	result, err := pipeline.Render(context.Background(), batch("berserk", "monster", "pluto"), "Top picks", output)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Slides[0].Narrated != true || result.Slides[1].Narrated != false || result.Slides[2].Narrated != true {
		t.Fatalf("expected only the failing slide silent, got %+v", result.Slides)
	}

	// title + 3 items + outro segments, then concat. Every segment must map
	// an audio stream: narration when synthesis worked, a silent source for
	// the failed slide, or the join cannot be stream-copied.
	if len(runner.calls) != 6 {
		t.Fatalf("expected 6 ffmpeg invocations, got %d", len(runner.calls))
	}
	for i, call := range runner.calls[:5] {
		joined := strings.Join(call, " ")
		if strings.Contains(joined, "-an") {
			t.Fatalf("segment %d dropped its audio stream: %s", i, joined)
		}
		hasNarration := strings.Contains(joined, ".mp3")
		hasSilence := strings.Contains(joined, "anullsrc")
		if hasNarration == hasSilence {
			t.Fatalf("segment %d must carry exactly one audio source: %s", i, joined)
		}
	}
	monsterSegment := strings.Join(runner.calls[2], " ")
	if !strings.Contains(monsterSegment, "anullsrc") {
		t.Fatalf("expected silent source for the failed slide, got: %s", monsterSegment)
	}
}

func TestRenderSearchFailureFallsBackToGeneratedCover(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := render.NewPipeline(cfg, nil, nil, fakeSearch{err: errors.New("api down")},
		render.WithRunner(&fakeRunner{}))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	result, err := pipeline.Render(context.Background(), batch("berserk"), "Top picks", output)
	if err != nil {
		t.Fatalf("Render failed despite cover fallback: %v", err)
	}
	if _, err := os.Stat(result.Slides[0].ImagePath); err != nil {
		t.Fatalf("expected fallback cover image: %v", err)
	}
}

func TestRenderSegmentFailureIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := render.NewPipeline(cfg, nil, nil, nil,
		render.WithRunner(&fakeRunner{failOn: "seg_1"}))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	_, err := pipeline.Render(context.Background(), batch("berserk"), "Top picks", output)
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected render failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg exploded") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
	if _, statErr := os.Stat(output); statErr == nil {
		t.Fatal("expected no output after segment failure")
	}
}

func TestRenderConcatFailureIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := render.NewPipeline(cfg, nil, nil, nil,
		render.WithRunner(&fakeRunner{failOn: "daily.mp4"}))

	output := filepath.Join(cfg.Paths.OutputDir, "daily.mp4")
	if _, err := pipeline.Render(context.Background(), batch("berserk"), "Top picks", output); !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestRenderEmptyBatchRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := render.NewPipeline(cfg, nil, nil, nil, render.WithRunner(&fakeRunner{}))

	if _, err := pipeline.Render(context.Background(), nil, "Top picks", "out.mp4"); !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected render failure for empty batch, got %v", err)
	}
}
