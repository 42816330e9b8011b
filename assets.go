package bento

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDecodeWorkers bounds concurrent image decodes.
const DefaultDecodeWorkers = 4

// ErrNoFilesystem is returned when loading from an Assets without a filesystem.
var ErrNoFilesystem = errors.New("bento: assets have no filesystem")

// LoadCallback reports one asset. err is nil on success.
type LoadCallback func(err error, name string, img image.Image)

// Assets decodes images from a filesystem and hands them out by name. Names
// are file paths relative to the filesystem root without the extension.
// Loading runs decoders concurrently; every other method must be called from
// the game goroutine.
type Assets struct {
	fsys    fs.FS
	workers int
	sources map[string]image.Image
	images  map[string]*ebiten.Image
}

// NewAssets creates an asset store reading from fsys.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:    fsys,
		workers: DefaultDecodeWorkers,
		sources: make(map[string]image.Image),
		images:  make(map[string]*ebiten.Image),
	}
}

// SetWorkers sets the number of concurrent decoders. Values below 1 mean 1.
func (a *Assets) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	a.workers = n
}

type decoded struct {
	name string
	img  image.Image
	err  error
}

// Load decodes the files at paths concurrently. After every decode has
// finished, cb is called once per path in the given order on the calling
// goroutine. The returned error joins the individual failures; a canceled
// ctx stops decoding that has not started yet.
func (a *Assets) Load(ctx context.Context, paths []string, cb LoadCallback) error {
	results := make([]decoded, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, p := range paths {
		g.Go(func() error {
			results[i].name = assetName(p)
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return err
			}
			results[i].img, results[i].err = a.decode(p)
			return nil
		})
	}
	waitErr := g.Wait()

	var errs []error
	for _, r := range results {
		if r.err == nil {
			a.sources[r.name] = r.img
			delete(a.images, r.name)
		} else {
			errs = append(errs, r.err)
			logger.Warn("asset failed to load", zap.String("asset", r.name), zap.Error(r.err))
		}
		if cb != nil {
			cb(r.err, r.name, r.img)
		}
	}
	if waitErr != nil && len(errs) == 0 {
		return waitErr
	}
	return errors.Join(errs...)
}

// LoadDir loads every image file directly inside dir.
func (a *Assets) LoadDir(ctx context.Context, dir string, cb LoadCallback) error {
	if a.fsys == nil {
		return fmt.Errorf("read asset dir %s: %w", dir, ErrNoFilesystem)
	}
	entries, err := fs.ReadDir(a.fsys, dir)
	if err != nil {
		return fmt.Errorf("read asset dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, path.Join(dir, e.Name()))
		}
	}
	return a.Load(ctx, paths, cb)
}

func (a *Assets) decode(p string) (image.Image, error) {
	if a.fsys == nil {
		return nil, fmt.Errorf("open asset %s: %w", p, ErrNoFilesystem)
	}
	f, err := a.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open asset %s: %w", p, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", p, err)
	}
	return img, nil
}

// Add registers an already decoded image under name.
func (a *Assets) Add(name string, img image.Image) {
	a.sources[name] = img
	delete(a.images, name)
}

// Source returns the decoded image, or nil.
func (a *Assets) Source(name string) image.Image {
	return a.sources[name]
}

// GetImage returns the GPU image for name, uploading it on first use.
// Returns nil when the asset is not loaded.
func (a *Assets) GetImage(name string) *ebiten.Image {
	if img, ok := a.images[name]; ok {
		return img
	}
	src, ok := a.sources[name]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	a.images[name] = img
	return img
}

// Has reports whether name is loaded.
func (a *Assets) Has(name string) bool {
	_, ok := a.sources[name]
	return ok
}

// Unload forgets name and releases its GPU image.
func (a *Assets) Unload(name string) {
	if img, ok := a.images[name]; ok {
		img.Deallocate()
		delete(a.images, name)
	}
	delete(a.sources, name)
}

// assetName strips the extension from a path.
func assetName(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}
