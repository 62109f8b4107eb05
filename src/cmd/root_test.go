package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-lookup/src/config"
)

type fakePokeApi struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakePokeApi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()
	switch r.URL.Path {
	case "/api/v2/pokemon":
		_, _ = w.Write([]byte(`{"count": 3, "results": [
			{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
			{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
		]}`))
	case "/api/v2/pokemon/1/":
		_, _ = w.Write([]byte(`{"id": 1, "name": "bulbasaur", "weight": 69, "height": 7,
			"abilities": [{"ability": {"name": "overgrow"}}, {"ability": {"name": "chlorophyll"}}],
			"types": [{"type": {"name": "grass"}}, {"type": {"name": "poison"}}],
			"sprites": {"front_default": "http://sprites/1.png"}}`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakePokeApi) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func setup(t *testing.T) (*fakePokeApi, string) {
	t.Helper()
	api := &fakePokeApi{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "api:\n  base_url: " + server.URL + "/api/v2\n  timeout: 5\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return api, cfgPath
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return ansi.Strip(out.String()), err
}

func writeIndex(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon_names_urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLookupTable(t *testing.T) {
	api, cfgPath := setup(t)
	indexPath := writeIndex(t, "bulbasaur,http://example/1\n")

	out, err := execute(t, "Bulbasaur\nn\n", "--config", cfgPath, "--index", indexPath, "--links", "never")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v2/pokemon/1/"}, api.requested())
	assert.Contains(t, out, "¡Pokémon encontrado!")
	assert.Contains(t, out, "Información básica de BULBASAUR")
	assert.Contains(t, out, "grass, poison")
	assert.Contains(t, out, "Búsqueda finalizada. Hasta luego!")
}

func TestLookupJsonOutput(t *testing.T) {
	_, cfgPath := setup(t)
	indexPath := writeIndex(t, "bulbasaur,http://example/1\n")

	out, err := execute(t, "bulbasaur\nn\n", "--config", cfgPath, "--index", indexPath, "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"abilities": "overgrow, chlorophyll"`)
	assert.Contains(t, out, `"weight": 69`)
}

func TestLookupMissingNameMakesNoRequest(t *testing.T) {
	api, cfgPath := setup(t)
	indexPath := writeIndex(t, "bulbasaur,http://example/1\n")

	out, err := execute(t, "missingno\nn\n", "--config", cfgPath, "--index", indexPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Pokémon no encontrado")
	assert.Empty(t, api.requested())
}

func TestLookupMissingIndexIsFatal(t *testing.T) {
	_, cfgPath := setup(t)

	_, err := execute(t, "", "--config", cfgPath, "--index", filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndexFetchAndConvert(t *testing.T) {
	api, cfgPath := setup(t)
	dir := t.TempDir()
	textPath := filepath.Join(dir, "names.txt")
	parquetPath := filepath.Join(dir, "names.parquet")
	roundTripPath := filepath.Join(dir, "roundtrip.txt")

	out, err := execute(t, "", "--config", cfgPath, "index", "fetch", "--limit", "2", "--out", textPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 entries to "+textPath)
	assert.Contains(t, api.requested(), "/api/v2/pokemon")

	_, err = execute(t, "", "--config", cfgPath, "index", "convert", textPath, parquetPath)
	require.NoError(t, err)
	_, err = execute(t, "", "--config", cfgPath, "index", "convert", parquetPath, roundTripPath)
	require.NoError(t, err)

	original, err := os.ReadFile(textPath)
	require.NoError(t, err)
	converted, err := os.ReadFile(roundTripPath)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(converted))
}

func TestLookupFromParquetIndex(t *testing.T) {
	api, cfgPath := setup(t)
	parquetPath := filepath.Join(t.TempDir(), "names.parquet")

	_, err := execute(t, "", "--config", cfgPath, "index", "fetch", "--limit", "2", "--out", parquetPath)
	require.NoError(t, err)

	out, err := execute(t, "bulbasaur\nn\n", "--config", cfgPath, "--index", parquetPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Información básica de BULBASAUR")
	assert.Contains(t, api.requested(), "/api/v2/pokemon/1/")
}

func TestHandleRefresh(t *testing.T) {
	_, cfgPath := setup(t)
	loaded, err := config.Load(config.New(), cfgPath)
	require.NoError(t, err)
	cfg = loaded
	sugar = zap.NewNop().Sugar()
	destination := filepath.Join(t.TempDir(), "refreshed.txt")

	result, err := handleRefresh(context.Background(), RefreshRequest{Limit: 2, Destination: destination})
	require.NoError(t, err)
	assert.Equal(t, &RefreshResult{Destination: destination, Count: 2}, result)

	data, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "bulbasaur,"))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "poke-lookup dev")
}
