package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// Context identifies the scope aggregating entities: an application, a
// plug-in or a library. It resolves resource paths and supplies the default
// owner of entities that have none. A context lives for the whole process.
type Context struct {
	id           uuid.UUID
	name         string
	resourcePath string
	version      string
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithResourcePath sets the directory local resources are resolved against.
func WithResourcePath(path string) ContextOption {
	return func(c *Context) { c.resourcePath = path }
}

// WithVersion sets the semantic version of the context, like "v1.2.0".
func WithVersion(version string) ContextOption {
	return func(c *Context) { c.version = version }
}

// NewContext creates a context with the given name.
func NewContext(name string, opts ...ContextOption) *Context {
	c := &Context{id: uuid.New(), name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the identifier generated for the context.
func (c *Context) ID() uuid.UUID { return c.id }

// Name returns the context name.
func (c *Context) Name() string { return c.name }

// ResourcePath returns the resource directory, or "" if none.
func (c *Context) ResourcePath() string { return c.resourcePath }

// Version returns the version given at construction.
func (c *Context) Version() string { return c.version }

// Validate checks the name and, if set, the semantic version.
func (c *Context) Validate() error {
	if strings.TrimSpace(c.name) == "" {
		return fmt.Errorf("context name required")
	}
	if c.version != "" && !semver.IsValid(c.version) {
		return fmt.Errorf("context %q: invalid semantic version %q", c.name, c.version)
	}
	return nil
}

// Resolve returns the path of a resource relative to the context.
// It returns false when the context has no resource path. Absolute names
// are returned unchanged.
func (c *Context) Resolve(name string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, true
	}
	if c == nil || c.resourcePath == "" {
		return "", false
	}
	return filepath.Join(c.resourcePath, filepath.FromSlash(name)), true
}

// Adopt makes c the context of o if o has none and returns the context now
// owning o.
func (c *Context) Adopt(o Object) *Context {
	e := o.Base()
	if e.context == nil {
		e.SetContext(c)
	}
	return e.context
}

func (c *Context) String() string {
	if c.version != "" {
		return c.name + "@" + c.version
	}
	return c.name
}
