package index

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

type Entry struct {
	Name string
	Url  string
}

// Match is a successful lookup. Id is the 1-based PokeAPI identifier derived
// from the entry's position in the index file.
type Match struct {
	Entry
	Position int
	Id       int
}

type Index struct {
	entries   []Entry
	positions map[string]int
}

func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds an index over entries. When a name appears more than once the
// first position wins.
func New(entries []Entry) *Index {
	positions := make(map[string]int, len(entries))
	for i, entry := range entries {
		key := Normalize(entry.Name)
		if _, ok := positions[key]; !ok {
			positions[key] = i
		}
	}
	return &Index{
		entries:   entries,
		positions: positions,
	}
}

func (ix *Index) Lookup(name string) (Match, bool) {
	position, ok := ix.positions[Normalize(name)]
	if !ok {
		return Match{}, false
	}
	return Match{
		Entry:    ix.entries[position],
		Position: position,
		Id:       position + 1,
	}, true
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Parse reads the text index format: one `name,url` record per line, split
// on the first comma. Blank lines are skipped and take no position.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, url, found := strings.Cut(line, ",")
		if !found {
			return nil, fmt.Errorf("line %d: expected name,url but got %q", lineNumber, line)
		}
		entries = append(entries, Entry{
			Name: Normalize(name),
			Url:  strings.TrimSpace(url),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// IdFromUrl extracts the trailing numeric segment of a PokeAPI resource URL.
func IdFromUrl(url string) (int, bool) {
	id, err := strconv.Atoi(path.Base(strings.TrimRight(url, "/")))
	if err != nil {
		return 0, false
	}
	return id, true
}
