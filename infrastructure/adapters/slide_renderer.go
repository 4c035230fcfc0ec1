package adapters

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/config"
	"generate-briefing-video/domain"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const slideTextMargin = 40

var (
	slateBackground = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	titleWhite      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	subtitleSlate   = color.RGBA{R: 148, G: 163, B: 184, A: 255}
)

type slideRenderer struct {
	logger       outbound.LoggerPort
	width        int
	height       int
	titleFace    font.Face
	subtitleFace font.Face
}

// NewSlideRenderer builds the raster renderer. Font resolution is two
// tier: the configured TTF when it loads, the built-in bitmap face
// otherwise. A missing font degrades the slides, it never fails them.
func NewSlideRenderer(videoConfig *config.VideoConfig, logger outbound.LoggerPort) outbound.SlideRendererPort {
	return &slideRenderer{
		logger:       logger,
		width:        videoConfig.Width,
		height:       videoConfig.Height,
		titleFace:    resolveFace(videoConfig.FontPath, videoConfig.TitleFontSize, logger),
		subtitleFace: resolveFace(videoConfig.FontPath, videoConfig.SubtitleFontSize, logger),
	}
}

func resolveFace(fontPath string, size float64, logger outbound.LoggerPort) font.Face {
	if fontPath == "" {
		return basicfont.Face7x13
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		logger.WarnWithFields("preferred font unavailable, using built-in face", map[string]interface{}{
			"font_path": fontPath,
			"error":     err.Error(),
		})
		return basicfont.Face7x13
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		logger.WarnWithFields("preferred font failed to parse, using built-in face", map[string]interface{}{
			"font_path": fontPath,
			"error":     err.Error(),
		})
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.WarnWithFields("preferred font face creation failed, using built-in face", map[string]interface{}{
			"font_path": fontPath,
			"error":     err.Error(),
		})
		return basicfont.Face7x13
	}

	return face
}

// Render draws the slide and writes it as a PNG named by the hash of
// its content, so re-rendering an identical slide within a run reuses
// the same file.
func (r *slideRenderer) Render(slide domain.Slide, dir string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: slateBackground}, image.Point{}, draw.Src)

	r.drawCentered(img, r.titleFace, titleWhite, slide.Title, r.height/2-50)
	r.drawCentered(img, r.subtitleFace, subtitleSlate, slide.Subtitle, r.height/2+50)

	fileName := filepath.Join(dir, fmt.Sprintf("slide_%x.png", contentHash(slide.Title, slide.Subtitle)))
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			r.logger.Error(err, "Failed to close slide file")
		}
	}(file)

	if err := png.Encode(file, img); err != nil {
		return "", err
	}

	return fileName, nil
}

func (r *slideRenderer) drawCentered(dst *image.RGBA, face font.Face, col color.Color, text string, centerY int) {
	if text == "" {
		return
	}
	text = r.fitToWidth(face, text)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := drawer.MeasureString(text)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(r.width/2) - width/2,
		Y: fixed.I(centerY) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(text)
}

// fitToWidth trims text until it fits the slide, a backstop for the
// planner's character budget when a wide face overshoots it.
func (r *slideRenderer) fitToWidth(face font.Face, text string) string {
	maxWidth := fixed.I(r.width - 2*slideTextMargin)
	if font.MeasureString(face, text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if font.MeasureString(face, string(runes)+"...") <= maxWidth {
			return string(runes) + "..."
		}
	}
	return string(runes)
}

func contentHash(title, subtitle string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(subtitle))
	return h.Sum64()
}
