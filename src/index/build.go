package index

import (
	"context"
	"fmt"

	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
)

// DefaultLimit covers the national dex. Entries past it are alternate forms
// whose ids jump to 10001+ and would break the position+1 numbering.
const DefaultLimit int32 = 1025

type Lister interface {
	ListPokemon(ctx context.Context, limit int32) ([]pokeapi.NamedResource, error)
}

func Build(ctx context.Context, lister Lister, limit int32) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	results, err := lister.ListPokemon(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing pokemon: %w", err)
	}
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		entries = append(entries, Entry{Name: Normalize(result.Name), Url: result.Url})
	}
	return entries, nil
}

// Refresh rebuilds the index from PokeAPI and writes it to location.
func Refresh(ctx context.Context, lister Lister, saver Saver, location, format string, limit int32) (int, error) {
	entries, err := Build(ctx, lister, limit)
	if err != nil {
		return 0, err
	}
	if err := Save(ctx, saver, location, format, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
