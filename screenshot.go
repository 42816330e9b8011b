package bento

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a labeled capture of the current frame. The PNG is
// written to Settings.ScreenshotDir at the end of the next Draw.
func (g *Game) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots saves one capture of screen per queued label.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	labels := g.screenshotQueue
	if len(labels) == 0 {
		return
	}
	g.screenshotQueue = nil

	dir := g.Settings.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		g.Logger.Warn("screenshot directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	frame := captureFrame(screen)
	now := time.Now()
	for _, label := range labels {
		path, err := saveScreenshot(dir, screenshotName(now, label), frame)
		if err != nil {
			g.Logger.Warn("screenshot failed", zap.String("label", label), zap.Error(err))
			continue
		}
		g.Logger.Debug("screenshot written", zap.String("path", path))
	}
}

// captureFrame reads screen into an RGBA image. Ebiten hands back
// premultiplied pixels, which is what image.RGBA stores.
func captureFrame(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

// screenshotName builds a file name from the capture time and a label folded
// to lower case, with runs of anything but letters and digits turned into a
// single '-'.
func screenshotName(at time.Time, label string) string {
	dash := false
	slug := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			dash = false
			return unicode.ToLower(r)
		}
		if dash {
			return -1
		}
		dash = true
		return '-'
	}, label)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "frame"
	}
	return fmt.Sprintf("%s-%s.png", at.Format("20060102-150405.000"), slug)
}

// saveScreenshot encodes img into dir under name. The file only appears once
// it is fully written.
func saveScreenshot(dir, name string, img image.Image) (string, error) {
	tmp, err := os.CreateTemp(dir, ".shot-*")
	if err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("screenshot %s: encode: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	return path, nil
}
