package adapters

import (
	"bytes"
	"image/png"
	"os"
	"testing"

	"generate-briefing-video/config"
	"generate-briefing-video/domain"
)

func newTestRenderer(fontPath string) *slideRenderer {
	cfg := &config.VideoConfig{
		Width:            320,
		Height:           180,
		FontPath:         fontPath,
		TitleFontSize:    60,
		SubtitleFontSize: 40,
	}
	return NewSlideRenderer(cfg, NewZerologWrapper()).(*slideRenderer)
}

func TestSlideRenderer_Render(t *testing.T) {
	renderer := newTestRenderer("")
	dir := t.TempDir()

	fileName, err := renderer.Render(domain.Slide{Title: "GPT-5 Released", Subtitle: "TechCrunch"}, dir)
	if err != nil {
		t.Fatal("render failed:", err)
	}

	file, err := os.Open(fileName)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatal("output is not a decodable PNG:", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 180 {
		t.Fatalf("unexpected slide geometry %dx%d", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != slateBackground.R || uint8(g>>8) != slateBackground.G || uint8(b>>8) != slateBackground.B {
		t.Fatalf("corner pixel is not the slate background: %v", img.At(0, 0))
	}
}

func TestSlideRenderer_IdenticalContentSharesFile(t *testing.T) {
	renderer := newTestRenderer("")
	dir := t.TempDir()

	slide := domain.Slide{Title: "Chip Shortage Eases", Subtitle: "Reuters"}

	first, err := renderer.Render(slide, dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := renderer.Render(slide, dir)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Fatalf("same content produced different files: %q vs %q", first, second)
	}

	firstPayload, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	secondPayload, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstPayload, secondPayload) {
		t.Fatal("re-render of identical content is not byte-identical")
	}
}

func TestSlideRenderer_DistinctContentDistinctFiles(t *testing.T) {
	renderer := newTestRenderer("")
	dir := t.TempDir()

	first, err := renderer.Render(domain.Slide{Title: "AI", Subtitle: "2 Key Updates"}, dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := renderer.Render(domain.Slide{Title: "PAKISTAN", Subtitle: "1 Key Updates"}, dir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("distinct slides collided on %q", first)
	}
}

func TestSlideRenderer_MissingFontStillRenders(t *testing.T) {
	renderer := newTestRenderer("/nonexistent/font.ttf")
	dir := t.TempDir()

	fileName, err := renderer.Render(domain.Slide{Title: "Daily News Intelligence", Subtitle: "Your Personal Briefing"}, dir)
	if err != nil {
		t.Fatal("render with fallback face failed:", err)
	}
	if _, err := os.Stat(fileName); err != nil {
		t.Fatal(err)
	}
}
