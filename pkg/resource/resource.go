// Package resource resolves icon references against their Context and
// decodes local icon files. Stock icons are left to the toolkit.
package resource

import (
	stderrors "errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
)

var (
	// ErrStockIcon is returned when a stock icon is resolved as a file.
	ErrStockIcon = stderrors.New("resource: stock icon has no file")
	// ErrNoIcon is returned for an empty icon reference.
	ErrNoIcon = stderrors.New("resource: no icon")
	// ErrNoResourcePath is returned when a relative icon belongs to a
	// context without resource path.
	ErrNoResourcePath = stderrors.New("resource: context has no resource path")
)

// Icon is a decoded local icon.
type Icon struct {
	Ref    model.IconRef
	Path   string
	Format string
	Image  image.Image
}

// Resolve returns the file of a named icon owned by ctx. Errors are
// *errors.ModelError of kind KindResource.
func Resolve(ctx *model.Context, ref model.IconRef) (string, error) {
	fail := func(err error) (string, error) {
		me := errors.Wrap("resource.Resolve", errors.KindResource, err)
		me.Entity = ref.String()
		return "", me
	}
	switch {
	case ref.IsZero():
		return fail(ErrNoIcon)
	case ref.IsStock():
		return fail(ErrStockIcon)
	}
	path, ok := ctx.Resolve(ref.Name)
	if !ok {
		return fail(ErrNoResourcePath)
	}
	if _, err := os.Stat(path); err != nil {
		return fail(err)
	}
	return path, nil
}

// Load resolves and decodes a named icon. PNG, JPEG, GIF, BMP, TIFF and
// WebP files are supported.
func Load(ctx *model.Context, ref model.IconRef) (*Icon, error) {
	path, err := Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Icon, error) {
		me := errors.Wrap("resource.Load", errors.KindResource, err)
		me.Entity = ref.String()
		return nil, me
	}
	f, err := os.Open(path)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fail(fmt.Errorf("decode %s: %w", path, err))
	}
	return &Icon{Ref: ref, Path: path, Format: format, Image: img}, nil
}

// For loads the icon of an entity from its own context.
func For(o model.Object) (*Icon, error) {
	return Load(o.Context(), o.Icon())
}

// Cache memoizes decoded icons by file. The zero value is ready to use
// and safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	icons map[string]*Icon
}

// Load returns the cached icon for ref, decoding it on first use. Failures
// are not cached.
func (c *Cache) Load(ctx *model.Context, ref model.IconRef) (*Icon, error) {
	path, err := Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if icon, ok := c.icons[path]; ok {
		return icon, nil
	}
	icon, err := Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if c.icons == nil {
		c.icons = make(map[string]*Icon)
	}
	c.icons[path] = icon
	return icon, nil
}

// Len returns the number of cached icons.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.icons)
}
