package palette

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Provider supplies the palette for a run
type Provider interface {
	Palette(context.Context) (*Palette, error)
}

// Builtin provides the palette generated from BaseColors
type Builtin struct{}

// Palette implements Provider
func (Builtin) Palette(_ context.Context) (*Palette, error) {
	return Default(), nil
}

// File provides a palette read from a local file
type File struct {
	Path string
}

// Palette implements Provider
func (f File) Palette(_ context.Context) (*Palette, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Cached provides a palette from a local copy, fetching it from URL and
// writing the local copy only when it doesn't already exist
type Cached struct {
	Path   string
	URL    string
	Client *http.Client
}

// 1 MB is far more than any 256 entry palette needs
const maxFetchSize = 1 << 20

func (c Cached) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("palette: fetching %s: %s", c.URL, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
}

func (c Cached) store(p *Palette) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.Path), ".palette-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := p.WriteCSV(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), c.Path)
}

// Palette implements Provider
func (c Cached) Palette(ctx context.Context) (*Palette, error) {
	p, err := File{Path: c.Path}.Palette(ctx)
	if err == nil || !errors.Is(err, os.ErrNotExist) || c.URL == "" {
		return p, err
	}

	b, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if p, err = Read(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	if err := c.store(p); err != nil {
		return nil, err
	}

	return p, nil
}
