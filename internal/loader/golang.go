package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Go imports Go packages with the yaegi interpreter. Standard library
// packages resolve to compiled symbols; anything else is looked up as
// source under <gopath>/src and has its init functions run.
type Go struct {
	gopath string
}

// GoOption configures a Go loader.
type GoOption func(*Go)

// WithGoPath sets the GOPATH-style root searched for package sources.
// When empty, yaegi falls back to the build default GOPATH.
func WithGoPath(dir string) GoOption {
	return func(g *Go) {
		g.gopath = dir
	}
}

// NewGo creates a Go loader.
func NewGo(opts ...GoOption) *Go {
	g := &Go{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load imports the package at path in a fresh interpreter.
func (g *Go) Load(ctx context.Context, path string) (err error) {
	if path == "" {
		return errors.New("empty import path")
	}

	i := interp.New(interp.Options{GoPath: g.gopath})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("load stdlib symbols: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if _, err := i.EvalWithContext(ctx, fmt.Sprintf("import %q", path)); err != nil {
		return err
	}
	return nil
}
