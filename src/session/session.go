// Package session runs the interactive lookup loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-lookup/src/index"
	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
	"github.com/BielosX/wombat/poke-lookup/src/render"
)

const (
	promptName     = "Por favor ingrese el nombre del Pokémon:"
	promptContinue = "¿Desea realizar otra consulta? (S/N):"
	msgFound       = "¡Pokémon encontrado!"
	msgNotFound    = "Pokémon no encontrado"
	msgFetchFailed = "No se pudo obtener la información"
	msgFarewell    = "Búsqueda finalizada. Hasta luego!"
	answerContinue = "S"
)

type Fetcher interface {
	PokemonUrl(id int) string
	GetPokemon(ctx context.Context, id int) (*pokeapi.PokemonResponse, error)
}

type inputLine struct {
	text string
	err  error
}

type Session struct {
	index    *index.Index
	fetcher  Fetcher
	renderer *render.Renderer
	input    *bufio.Reader
	lines    chan inputLine
	sugar    *zap.SugaredLogger
}

func New(ix *index.Index, fetcher Fetcher, renderer *render.Renderer, input io.Reader, sugar *zap.SugaredLogger) *Session {
	return &Session{
		index:    ix,
		fetcher:  fetcher,
		renderer: renderer,
		input:    bufio.NewReader(input),
		sugar:    sugar,
	}
}

// readInput delivers input lines until the reader fails. The final inputLine
// carries the error (io.EOF at end of input) and the channel is closed.
func (s *Session) readInput() {
	defer close(s.lines)
	for {
		text, err := s.input.ReadString('\n')
		if text != "" {
			s.lines <- inputLine{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			s.lines <- inputLine{err: err}
			return
		}
	}
}

// readLine blocks until a line arrives, the input ends (ok is false) or ctx
// is cancelled. The reading goroutine is started on first use.
func (s *Session) readLine(ctx context.Context) (string, bool, error) {
	if s.lines == nil {
		s.lines = make(chan inputLine, 1)
		go s.readInput()
	}
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, open := <-s.lines:
		switch {
		case !open, errors.Is(line.err, io.EOF):
			return "", false, nil
		case line.err != nil:
			return "", false, line.err
		default:
			return line.text, true, nil
		}
	}
}

// Run prompts until the user declines to continue or the input ends.
// Lookup failures are reported and never end the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.renderer.Prompt(promptName)
		line, ok, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := s.Lookup(ctx, line); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			s.renderer.Failure(fmt.Sprintf("%s: %s", msgFetchFailed, err))
		}

		s.renderer.Question(promptContinue)
		answer, ok, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok || strings.ToUpper(strings.TrimSpace(answer)) != answerContinue {
			break
		}
	}
	s.renderer.Farewell(msgFarewell)
	return nil
}

// Lookup handles one query. A name missing from the index is reported and
// returns nil without touching the API.
func (s *Session) Lookup(ctx context.Context, input string) error {
	name := index.Normalize(input)
	match, ok := s.index.Lookup(name)
	if !ok {
		s.sugar.Infof("Pokemon %q not in index", name)
		s.renderer.Failure(msgNotFound)
		return nil
	}
	s.renderer.Success(msgFound)
	if urlId, ok := index.IdFromUrl(match.Url); ok && urlId != match.Id {
		s.sugar.Warnf("Index position of %s gives id %d but its url points to %d", name, match.Id, urlId)
	}

	pokemon, err := s.fetcher.GetPokemon(ctx, match.Id)
	if err != nil {
		return err
	}
	s.sugar.Debugf("Abilities of %s: %v", name, pokemon.AbilityNames())
	summary := render.Summarize(name, s.fetcher.PokemonUrl(match.Id), pokemon)
	return s.renderer.Pokemon(summary)
}
