package index

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BielosX/wombat/poke-lookup/src/csv"
	"github.com/BielosX/wombat/poke-lookup/src/parquet"
)

const (
	FormatAuto    = "auto"
	FormatText    = "text"
	FormatParquet = "parquet"
)

type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type Saver interface {
	Save(ctx context.Context, location string, reader io.Reader) error
}

// ResolveFormat maps "auto" (or empty) to a concrete format by extension.
func ResolveFormat(location, format string) (string, error) {
	switch format {
	case "", FormatAuto:
		if strings.HasSuffix(strings.ToLower(location), ".parquet") {
			return FormatParquet, nil
		}
		return FormatText, nil
	case FormatText, FormatParquet:
		return format, nil
	default:
		return "", fmt.Errorf("unknown index format %q", format)
	}
}

func Load(ctx context.Context, opener Opener, location, format string) (*Index, error) {
	format, err := ResolveFormat(location, format)
	if err != nil {
		return nil, err
	}
	r, err := opener.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", location, err)
	}
	defer r.Close()
	entries, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", location, err)
	}
	return New(entries), nil
}

func Decode(r io.Reader, format string) ([]Entry, error) {
	if format != FormatParquet {
		return Parse(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rows, err := parquet.ReadIndex(data)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{Name: Normalize(row.Name), Url: strings.TrimSpace(row.Url)})
	}
	return entries, nil
}

type entryWriter interface {
	Write(name, url string) error
	Finish() error
	BufferReader() io.Reader
}

// Encode renders entries in the given concrete format.
func Encode(entries []Entry, format string) (io.Reader, error) {
	var w entryWriter
	if format == FormatParquet {
		pw, err := parquet.NewIndexWriter()
		if err != nil {
			return nil, err
		}
		w = pw
	} else {
		w = csv.NewIndexWriter()
	}
	for _, entry := range entries {
		if err := w.Write(entry.Name, entry.Url); err != nil {
			return nil, err
		}
	}
	if err := w.Finish(); err != nil {
		return nil, err
	}
	return w.BufferReader(), nil
}

func Save(ctx context.Context, saver Saver, location, format string, entries []Entry) error {
	format, err := ResolveFormat(location, format)
	if err != nil {
		return err
	}
	r, err := Encode(entries, format)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := saver.Save(ctx, location, r); err != nil {
		return fmt.Errorf("saving index %s: %w", location, err)
	}
	return nil
}
