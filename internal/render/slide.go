package render

import (
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Raster composition for the three slide kinds. Title and outro slides are
// opaque full-frame cards; item slides are transparent canvases layered over
// the background video by ffmpeg.

var titleCaser = cases.Title(language.Und)

// displayTitle cleans a catalog id for on-screen use. Ids double as titles in
// the source data and are frequently all-lowercase.
func displayTitle(id string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range id {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '!':
			cleaned.WriteRune(r)
			prevSpace = false
		default:
			// Any other rune separates words; dropping it outright would
			// glue neighbours together (re:zero must not become rezero).
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return id
	}
	if title == strings.ToLower(title) {
		return titleCaser.String(title)
	}
	return title
}

type slideStyle struct {
	fontPath string
	width    int
	height   int
}

func (s slideStyle) apply(dc *gg.Context, points float64) {
	if s.fontPath == "" {
		return
	}
	// Falls back to gg's built-in face when the font cannot be loaded.
	_ = dc.LoadFontFace(s.fontPath, points)
}

// textCard renders centered, word-wrapped text on a dark card.
func textCard(text string, style slideStyle, points float64) image.Image {
	dc := gg.NewContext(style.width, style.height)
	dc.SetRGB255(10, 10, 10)
	dc.Clear()
	style.apply(dc, points)

	maxWidth := float64(style.width) * 0.85
	x := float64(style.width) / 2
	y := float64(style.height) / 2

	dc.SetRGB255(0, 0, 0)
	dc.DrawStringWrapped(text, x+2, y+2, 0.5, 0.5, maxWidth, 1.3, gg.AlignCenter)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringWrapped(text, x, y, 0.5, 0.5, maxWidth, 1.3, gg.AlignCenter)
	return dc.Image()
}

// overlayDescription stamps a translucent text box near the bottom of the
// cover image.
func overlayDescription(cover image.Image, description, fontPath string) image.Image {
	dc := gg.NewContextForImage(cover)
	w := float64(dc.Width())
	h := float64(dc.Height())

	points := w / 20
	if points < 18 {
		points = 18
	}
	style := slideStyle{fontPath: fontPath}
	style.apply(dc, points)

	maxWidth := w - 80
	lines := dc.WordWrap(description, maxWidth)
	if len(lines) == 0 {
		return dc.Image()
	}
	lineHeight := dc.FontHeight() * 1.3
	boxHeight := float64(len(lines))*lineHeight + 40
	boxWidth := 0.0
	for _, line := range lines {
		if lw, _ := dc.MeasureString(line); lw > boxWidth {
			boxWidth = lw
		}
	}
	boxWidth += 40

	x0 := (w - boxWidth) / 2
	y0 := h - boxHeight - 120
	dc.SetRGBA(0, 0, 0, 0.7)
	dc.DrawRectangle(x0, y0, boxWidth, boxHeight)
	dc.Fill()

	textY := y0 + 20 + dc.FontHeight()
	for _, line := range lines {
		lw, _ := dc.MeasureString(line)
		textX := (w - lw) / 2
		dc.SetRGB255(0, 0, 0)
		dc.DrawString(line, textX+1, textY+1)
		dc.SetRGB255(255, 255, 255)
		dc.DrawString(line, textX, textY)
		textY += lineHeight
	}
	return dc.Image()
}

// itemSlide layers the banner and cover on a transparent full-frame canvas.
// The background video shows through everywhere else.
func itemSlide(cover image.Image, title string, style slideStyle) image.Image {
	dc := gg.NewContext(style.width, style.height)

	banner := textCard(title, slideStyle{fontPath: style.fontPath, width: style.width, height: 200}, 56)
	dc.DrawImage(banner, 0, int(float64(style.height)*0.08))

	coverWidth := int(float64(style.width) * 0.78)
	fitted := imaging.Resize(cover, coverWidth, 0, imaging.Lanczos)
	dc.DrawImage(fitted, (style.width-coverWidth)/2, int(float64(style.height)*0.33))
	return dc.Image()
}

// fallbackCover generates a text-only stand-in when no cover image could be
// obtained from search or the placeholder asset.
func fallbackCover(title, fontPath string) image.Image {
	return textCard(title, slideStyle{fontPath: fontPath, width: 720, height: 1024}, 48)
}

func savePNG(img image.Image, path string) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save slide %s: %w", path, err)
	}
	return nil
}
