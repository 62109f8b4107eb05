package pokeapi

import "fmt"

type NamedResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResult struct {
	Count   int32           `json:"count"`
	Results []NamedResource `json:"results"`
}

type PokemonType struct {
	Slot int32         `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Slot     int32         `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

type PokemonSprites struct {
	FrontDefault string `json:"front_default"`
}

type PokemonResponse struct {
	Id        int32            `json:"id"`
	Name      string           `json:"name"`
	Weight    int32            `json:"weight"`
	Height    int32            `json:"height"`
	Abilities []PokemonAbility `json:"abilities"`
	Types     []PokemonType    `json:"types"`
	Sprites   PokemonSprites   `json:"sprites"`
}

func (p PokemonResponse) AbilityNames() []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		names = append(names, a.Ability.Name)
	}
	return names
}

func (p PokemonResponse) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// StatusError is returned when PokeAPI answers with anything but 200 OK.
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Url, e.StatusCode)
}
