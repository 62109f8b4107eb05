package csv

import (
	"fmt"
	"io"
	"strings"

	"github.com/xitongsys/parquet-go-source/buffer"
)

// IndexWriter produces the plain `name,url` index format: no header, one
// record per line, no quoting. A reader splits each line on its first comma,
// so a name must not contain a comma and neither field may span lines.
type IndexWriter struct {
	buffer *buffer.BufferFile
}

const InitialCapacity = 64 * 1024

func NewIndexWriter() *IndexWriter {
	return &IndexWriter{
		buffer: buffer.NewBufferFileCapacity(InitialCapacity),
	}
}

func (w *IndexWriter) Write(name, url string) error {
	if strings.ContainsAny(name, ",\r\n") {
		return fmt.Errorf("index name %q contains a comma or line break", name)
	}
	if strings.ContainsAny(url, "\r\n") {
		return fmt.Errorf("index url %q contains a line break", url)
	}
	_, err := w.buffer.Write([]byte(name + "," + url + "\n"))
	return err
}

func (w *IndexWriter) Finish() error {
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *IndexWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *IndexWriter) BufferReader() io.Reader {
	return w.buffer
}
