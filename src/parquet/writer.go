package parquet

import (
	"io"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type IndexWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
}

const InitialCapacity = 1024 * 1024

func NewIndexWriter() (*IndexWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(IndexEntry), 1)
	if err != nil {
		return nil, err
	}
	return &IndexWriter{
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *IndexWriter) Write(name, url string) error {
	return w.writer.Write(&IndexEntry{Name: name, Url: url})
}

func (w *IndexWriter) Finish() error {
	err := w.writer.WriteStop()
	if err != nil {
		return err
	}
	_, err = w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *IndexWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *IndexWriter) BufferReader() io.Reader {
	return w.buffer
}
