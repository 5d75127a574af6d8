package mapdata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Sink stores encoded records under their map number
type Sink interface {
	Write(num int, b []byte) error
}

// Filename returns the file name used for map number num
func Filename(num int) string {
	return fmt.Sprintf("map_%d.dat", num)
}

// Dir writes each record to its own file in a directory
type Dir struct {
	Path string
}

// Write implements Sink
func (d Dir) Write(num int, b []byte) error {
	return os.WriteFile(filepath.Join(d.Path, Filename(num)), b, 0644)
}

// Encode returns the gzip compressed record, ready to hand to a Sink in one
// piece
func Encode(r *Record) ([]byte, error) {
	b := new(bytes.Buffer)
	if _, err := r.WriteTo(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
