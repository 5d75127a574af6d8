package mapped

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/mapped/mapdata"
)

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

func findImages(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return interrupted(ctx)
			}

			return nil
		})
	}()
	return out, errc
}

// convertWorker converts each file in turn so numbering follows walk order.
// The number following the last record written is sent on the returned int
// channel once in has been drained or a conversion fails.
func (c *Converter) convertWorker(ctx context.Context, in <-chan string, first int, sink mapdata.Sink) (<-chan int, <-chan error) {
	done := make(chan int, 1)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		num := first
		defer func() { done <- num }()
		for file := range in {
			var err error
			if num, err = c.ConvertFile(ctx, file, num, sink); err != nil {
				errc <- fmt.Errorf("%s: %w", file, err)
				return
			}
		}
	}()
	return done, errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertDir converts every image found below dir in lexical order, numbering
// the records consecutively from first across all of them. Hidden files and
// directories are skipped.
func (c *Converter) ConvertDir(ctx context.Context, dir string, first int, sink mapdata.Sink) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return first, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return first, err
	}
	if !info.IsDir() {
		return first, fmt.Errorf("mapped: %s is not a directory", dir)
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	files, walkc := findImages(ctx, dir)
	done, workc := c.convertWorker(ctx, files, first, sink)

	err = waitForPipeline(walkc, workc)
	// Unblock whichever stage is still running
	cancelFunc()

	return <-done, err
}
