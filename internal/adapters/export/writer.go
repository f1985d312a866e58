package export

import (
	"io"
	"os"
)

// LazyFileWriter delays file creation until the first write, so a failed
// computation never leaves an empty output file behind.
type LazyFileWriter struct {
	path string
	file io.WriteCloser
}

// NewLazyFileWriter creates a writer that will create path on first use.
func NewLazyFileWriter(path string) *LazyFileWriter {
	return &LazyFileWriter{path: path}
}

func (w *LazyFileWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		f, err := os.Create(w.path)
		if err != nil {
			return 0, err
		}
		w.file = f
	}
	return w.file.Write(p)
}

func (w *LazyFileWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
