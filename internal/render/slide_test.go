package render

import (
	"image"
	"testing"
)

func TestDisplayTitleCasesLowercaseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"berserk", "Berserk"},
		{"one piece", "One Piece"},
		{"one_piece", "One Piece"},
		{"Chainsaw Man", "Chainsaw Man"},
		{"SPY x FAMILY", "SPY x FAMILY"},
		{"jojo's bizarre adventure", "Jojo's Bizarre Adventure"},
		{"re:zero", "Re Zero"},
		{"steel&bone", "Steel Bone"},
		{"dr. stone", "Dr Stone"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := displayTitle(tc.in); got != tc.want {
			t.Errorf("displayTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTextCardDimensions(t *testing.T) {
	style := slideStyle{width: 200, height: 100}
	img := textCard("Hello world", style, 24)
	bounds := img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Fatalf("unexpected card size: %v", bounds)
	}
	// The card is opaque; corners carry the dark background.
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("expected RGBA image, got %T", img)
	}
	if _, _, _, a := rgba.At(0, 0).RGBA(); a == 0 {
		t.Fatal("expected opaque background")
	}
}

func TestOverlayDescriptionPreservesBounds(t *testing.T) {
	cover := image.NewRGBA(image.Rect(0, 0, 400, 600))
	out := overlayDescription(cover, "A long description that should wrap across multiple lines of text", "")
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 600 {
		t.Fatalf("overlay changed bounds: %v", out.Bounds())
	}
}

func TestOverlayDescriptionEmptyTextIsNoop(t *testing.T) {
	cover := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := overlayDescription(cover, "", "")
	if out.Bounds() != cover.Bounds() {
		t.Fatalf("unexpected bounds: %v", out.Bounds())
	}
}

func TestItemSlideTransparentOutsideElements(t *testing.T) {
	style := slideStyle{width: 300, height: 600}
	cover := image.NewRGBA(image.Rect(0, 0, 100, 150))
	img := itemSlide(cover, "Berserk", style)

	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("expected RGBA image, got %T", img)
	}
	// Top-left corner sits above the banner band and must stay transparent
	// so the background video shows through.
	if _, _, _, a := rgba.At(0, 0).RGBA(); a != 0 {
		t.Fatal("expected transparent canvas corner")
	}
	// Inside the banner band the card is opaque.
	bannerY := int(float64(style.height)*0.08) + 10
	if _, _, _, a := rgba.At(10, bannerY).RGBA(); a == 0 {
		t.Fatal("expected opaque banner")
	}
}

func TestFallbackCoverHasPortraitShape(t *testing.T) {
	img := fallbackCover("Berserk", "")
	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		t.Fatalf("expected portrait cover, got %v", bounds)
	}
}
