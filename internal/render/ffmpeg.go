package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mangareel/internal/config"
)

// Segment describes one ffmpeg invocation producing a single slide clip.
type Segment struct {
	Image      string
	Audio      string
	Background string
	Overlay    string
	Duration   float64
}

// BuildSegmentArgs constructs the full ffmpeg argument slice for one slide.
// The background video (or a solid color source when absent) is looped,
// scaled to fill, and center-cropped; the slide canvas is overlaid full
// frame; the optional animation loops near the bottom.
func BuildSegmentArgs(v config.Video, seg Segment, output string) []string {
	args := make([]string, 0, 48)
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	if seg.Background != "" {
		args = append(args, "-stream_loop", "-1", "-i", seg.Background)
	} else {
		args = append(args,
			"-f", "lavfi",
			"-i", fmt.Sprintf("color=c=0x0a0a0a:s=%dx%d:r=%d", v.Width, v.Height, v.FPS),
		)
	}

	args = append(args, "-loop", "1", "-i", seg.Image)

	inputIndex := 2
	overlayInput := -1
	if seg.Overlay != "" {
		args = append(args, "-ignore_loop", "0", "-i", seg.Overlay)
		overlayInput = inputIndex
		inputIndex++
	}
	// Every segment carries an audio stream. Slides without narration get a
	// silent source so the concat demuxer can stream-copy a uniform layout.
	if seg.Audio != "" {
		args = append(args, "-i", seg.Audio)
	} else {
		args = append(args,
			"-f", "lavfi",
			"-t", formatSeconds(seg.Duration),
			"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
		)
	}
	audioInput := inputIndex
	inputIndex++

	var filter strings.Builder
	fmt.Fprintf(&filter, "[0:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d[bg]",
		v.Width, v.Height, v.Width, v.Height)
	fmt.Fprintf(&filter, ";[bg][1:v]overlay=0:0[base]")
	lastLabel := "base"
	if overlayInput >= 0 {
		animWidth := int(float64(v.Width) * 0.28)
		animY := int(float64(v.Height) * 0.74)
		fmt.Fprintf(&filter, ";[%d:v]scale=%d:-1[anim]", overlayInput, animWidth)
		fmt.Fprintf(&filter, ";[%s][anim]overlay=(W-w)/2:%d[withanim]", lastLabel, animY)
		lastLabel = "withanim"
	}

	args = append(args, "-filter_complex", filter.String(), "-map", "["+lastLabel+"]")
	args = append(args, "-map", fmt.Sprintf("%d:a", audioInput))

	args = append(args,
		"-t", formatSeconds(seg.Duration),
		"-r", strconv.Itoa(v.FPS),
		"-c:v", "libx264",
		"-preset", v.Preset,
		"-b:v", v.Bitrate,
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-ar", "44100",
		"-ac", "2",
		output,
	)
	return args
}

// BuildConcatArgs constructs the ffmpeg invocation joining slide clips.
func BuildConcatArgs(listPath, output string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output,
	}
}

// WriteConcatList writes the concat demuxer file listing slide clips in order.
func WriteConcatList(path string, clips []string) error {
	var buf bytes.Buffer
	for _, clip := range clips {
		fmt.Fprintf(&buf, "file '%s'\n", strings.ReplaceAll(clip, "'", `'\''`))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write concat list %s: %w", path, err)
	}
	return nil
}

func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Runner executes an external command and returns its captured stderr.
// Stubbed in tests so pipeline behaviour can be exercised without ffmpeg.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (stderr string, err error)
}

// ExecRunner runs commands with os/exec, capturing stderr for diagnostics.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stderrBuf.String(), err
}
