package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mangareel/internal/config"
	"mangareel/internal/render"
)

func videoSettings() config.Video {
	v := config.Default().Video
	return v
}

func argString(args []string) string {
	return strings.Join(args, " ")
}

func TestBuildSegmentArgsWithSolidBackground(t *testing.T) {
	args := render.BuildSegmentArgs(videoSettings(), render.Segment{
		Image:    "slide.png",
		Duration: 4.5,
	}, "seg.mp4")

	joined := argString(args)
	if !strings.Contains(joined, "-f lavfi") {
		t.Fatalf("expected lavfi color source, got: %s", joined)
	}
	if !strings.Contains(joined, "color=c=0x0a0a0a:s=1080x1920:r=30") {
		t.Fatalf("expected solid color spec, got: %s", joined)
	}
	if !strings.Contains(joined, "anullsrc=channel_layout=stereo:sample_rate=44100") {
		t.Fatalf("expected silent audio source without narration, got: %s", joined)
	}
	if !strings.Contains(joined, "-map 2:a") {
		t.Fatalf("expected silent source mapped as audio, got: %s", joined)
	}
	if !strings.Contains(joined, "-t 4.5") {
		t.Fatalf("expected duration flag, got: %s", joined)
	}
	if args[len(args)-1] != "seg.mp4" {
		t.Fatalf("expected output last, got: %s", args[len(args)-1])
	}
}

func TestBuildSegmentArgsWithBackgroundVideoAndAudio(t *testing.T) {
	args := render.BuildSegmentArgs(videoSettings(), render.Segment{
		Image:      "slide.png",
		Audio:      "tts.mp3",
		Background: "bg.mp4",
		Duration:   3,
	}, "seg.mp4")

	joined := argString(args)
	if !strings.Contains(joined, "-stream_loop -1 -i bg.mp4") {
		t.Fatalf("expected looped background input, got: %s", joined)
	}
	if !strings.Contains(joined, "-map 2:a") {
		t.Fatalf("expected audio map from input 2, got: %s", joined)
	}
	if !strings.Contains(joined, "-c:a aac") {
		t.Fatalf("expected aac audio codec, got: %s", joined)
	}
	if strings.Contains(joined, "-an") {
		t.Fatalf("unexpected -an with audio input: %s", joined)
	}
}

func TestBuildSegmentArgsWithOverlayShiftsAudioIndex(t *testing.T) {
	args := render.BuildSegmentArgs(videoSettings(), render.Segment{
		Image:      "slide.png",
		Audio:      "tts.mp3",
		Background: "bg.mp4",
		Overlay:    "cat.gif",
		Duration:   3,
	}, "seg.mp4")

	joined := argString(args)
	if !strings.Contains(joined, "-ignore_loop 0 -i cat.gif") {
		t.Fatalf("expected looping gif input, got: %s", joined)
	}
	if !strings.Contains(joined, "-map 3:a") {
		t.Fatalf("expected audio map from input 3 when overlay present, got: %s", joined)
	}
	if !strings.Contains(joined, "[withanim]") {
		t.Fatalf("expected overlay filter label, got: %s", joined)
	}
}

func TestBuildSegmentArgsUniformStreamLayout(t *testing.T) {
	narrated := render.BuildSegmentArgs(videoSettings(), render.Segment{
		Image:    "slide.png",
		Audio:    "tts.mp3",
		Duration: 3,
	}, "a.mp4")
	silent := render.BuildSegmentArgs(videoSettings(), render.Segment{
		Image:    "slide.png",
		Duration: 3,
	}, "b.mp4")

	// Both variants must encode the same audio layout or the concat
	// stream copy produces a broken join.
	for _, joined := range []string{argString(narrated), argString(silent)} {
		if !strings.Contains(joined, "-c:a aac -ar 44100 -ac 2") {
			t.Fatalf("expected uniform audio encode settings, got: %s", joined)
		}
		if strings.Contains(joined, "-an") {
			t.Fatalf("no segment may drop its audio stream: %s", joined)
		}
	}
}

func TestBuildConcatArgs(t *testing.T) {
	args := render.BuildConcatArgs("list.txt", "daily.mp4")
	joined := argString(args)
	if !strings.Contains(joined, "-f concat -safe 0 -i list.txt") {
		t.Fatalf("expected concat demuxer input, got: %s", joined)
	}
	if !strings.Contains(joined, "-c copy") {
		t.Fatalf("expected stream copy, got: %s", joined)
	}
}

func TestWriteConcatListQuotesPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := render.WriteConcatList(path, []string{"/tmp/a.mp4", "/tmp/it's.mp4"}); err != nil {
		t.Fatalf("WriteConcatList failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "file '/tmp/a.mp4'\n") {
		t.Fatalf("expected plain entry, got: %s", content)
	}
	if !strings.Contains(content, `it'\''s`) {
		t.Fatalf("expected escaped quote, got: %s", content)
	}
}
