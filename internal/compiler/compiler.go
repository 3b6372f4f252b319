// Package compiler loads an entry file and everything it imports, then
// resolves the modules in dependency order.
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"componentengine/internal/ast"
	"componentengine/internal/parser"
	"componentengine/internal/resolver"
	"componentengine/internal/typed"
	"componentengine/internal/types"
	"github.com/rs/zerolog"
)

const DefaultExtension = ".afx"

type Compiler struct {
	// Extension is appended to import paths written without one.
	Extension string
	// Globals seeds the root scope of every module. May be nil.
	Globals *types.Scope

	Modules  map[string]*ast.Module
	Resolved map[string]*typed.Module
	// order lists module paths so that every module follows its imports.
	order   []string
	loading map[string]bool
}

func New() *Compiler {
	c := &Compiler{Extension: DefaultExtension}
	c.Reset()
	return c
}

// Reset drops every loaded module so the next Check reads all files again.
func (c *Compiler) Reset() {
	c.Modules = map[string]*ast.Module{}
	c.Resolved = map[string]*typed.Module{}
	c.order = nil
	c.loading = map[string]bool{}
}

// Load parses entry and its imports without resolving them.
func (c *Compiler) Load(ctx context.Context, entry string) (*ast.Module, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, err
	}
	if err := c.loadRecursive(ctx, abs); err != nil {
		return nil, err
	}
	return c.Modules[abs], nil
}

// Check loads entry and resolves it together with everything it imports.
func (c *Compiler) Check(ctx context.Context, entry string) (*typed.Module, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, err
	}
	if err := c.loadRecursive(ctx, abs); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx)
	lookup := resolver.ImportFunc(func(from string) (*typed.Module, error) {
		mod, ok := c.Resolved[from]
		if !ok {
			return nil, fmt.Errorf("module %s is not resolved", from)
		}
		return mod, nil
	})
	for _, path := range c.order {
		if _, ok := c.Resolved[path]; ok {
			continue
		}
		mod, err := resolver.ResolveModule(c.Modules[path], lookup, c.Globals)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Int("components", len(mod.Components)).Msg("resolved module")
		c.Resolved[path] = mod
	}
	return c.Resolved[abs], nil
}

func (c *Compiler) loadRecursive(ctx context.Context, path string) error {
	if _, ok := c.Modules[path]; ok {
		return nil
	}
	if c.loading[path] {
		return fmt.Errorf("import cycle through %s", path)
	}
	c.loading[path] = true
	defer delete(c.loading, path)

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read module %s: %w", path, err)
	}
	mod, err := parser.ParseModule(path, string(src))
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("imports", len(mod.Imports)).Msg("parsed module")

	dir := filepath.Dir(path)
	for i := range mod.Imports {
		imp := &mod.Imports[i]
		resolved, err := c.resolveImport(dir, imp.From)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		imp.From = resolved
		if err := c.loadRecursive(ctx, resolved); err != nil {
			return err
		}
	}
	c.Modules[path] = mod
	c.order = append(c.order, path)
	return nil
}

func (c *Compiler) resolveImport(baseDir, from string) (string, error) {
	if strings.HasPrefix(from, "./") || strings.HasPrefix(from, "../") {
		path := filepath.Join(baseDir, from)
		if filepath.Ext(path) == "" {
			path += c.Extension
		}
		return filepath.Clean(path), nil
	}
	return "", fmt.Errorf("unsupported import: %s", from)
}
