// Package asset decodes the map bitmap off the UI goroutine.
package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result is the outcome of one load request.
type Result struct {
	Path   string
	Image  image.Image
	Format string
	Err    error
}

// Decode reads and decodes the image at path.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// Loader decodes images in a background goroutine. Results are collected
// with Poll from the UI goroutine.
type Loader struct {
	jobs    chan string
	results chan Result
	decode  func(string) (image.Image, string, error)
}

func NewLoader() *Loader {
	l := &Loader{
		jobs:    make(chan string, 1),
		results: make(chan Result, 1),
		decode:  Decode,
	}
	go l.run()
	return l
}

func (l *Loader) run() {
	for path := range l.jobs {
		img, format, err := l.decode(path)
		l.results <- Result{Path: path, Image: img, Format: format, Err: err}
	}
	close(l.results)
}

// Request queues path for decoding.
func (l *Loader) Request(path string) {
	l.jobs <- path
}

// Poll returns a finished result without blocking.
func (l *Loader) Poll() (Result, bool) {
	select {
	case r, ok := <-l.results:
		return r, ok
	default:
		return Result{}, false
	}
}

// Close stops the background goroutine once pending jobs finish.
func (l *Loader) Close() {
	close(l.jobs)
}
