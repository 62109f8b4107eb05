package parquet

import (
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
)

// ReadIndex decodes every row of an index Parquet file held in memory.
func ReadIndex(data []byte) ([]IndexEntry, error) {
	bufferFile := buffer.NewBufferFileFromBytes(data)
	r, err := reader.NewParquetReader(bufferFile, new(IndexEntry), 1)
	if err != nil {
		return nil, err
	}
	defer r.ReadStop()
	entries := make([]IndexEntry, r.GetNumRows())
	if err := r.Read(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
