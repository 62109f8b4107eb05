package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseUrl = "https://pokeapi.co/api/v2"

type Client struct {
	baseUrl string
	client  *http.Client
	sugar   *zap.SugaredLogger
}

func NewClient(baseUrl string, timeout time.Duration, sugar *zap.SugaredLogger) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  &http.Client{Timeout: timeout},
		sugar:   sugar,
	}
}

// PokemonUrl is the resource address for the given 1-based identifier.
// The trailing slash is part of the canonical PokeAPI resource form.
func (c *Client) PokemonUrl(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", c.baseUrl, id)
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*PokemonResponse, error) {
	url := c.PokemonUrl(id)
	c.sugar.Infof("Fetching Pokemon %s", url)
	var pokemon PokemonResponse
	if err := c.getAndDecode(ctx, url, &pokemon); err != nil {
		c.sugar.Warnf("Failed to fetch Pokemon %d: %s", id, err)
		return nil, err
	}
	return &pokemon, nil
}

// ListPokemon issues a single list request starting at offset 0.
func (c *Client) ListPokemon(ctx context.Context, limit int32) ([]NamedResource, error) {
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=0", c.baseUrl, limit)
	c.sugar.Infof("Listing Pokemon %s", url)
	var result PokemonListResult
	if err := c.getAndDecode(ctx, url, &result); err != nil {
		return nil, err
	}
	c.sugar.Infof("Got %d of %d Pokemon results", len(result.Results), result.Count)
	return result.Results, nil
}
