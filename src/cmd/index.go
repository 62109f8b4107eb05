package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-lookup/src/index"
	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
	"github.com/BielosX/wombat/poke-lookup/src/storage"
)

var (
	fetchLimit     int32
	fetchOut       string
	fetchOutFormat string

	convertFrom string
	convertTo   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and convert name index files",
}

var indexFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the Pokemon name list from PokeAPI into an index file",
	Long: `fetch issues one list request to PokeAPI and writes the results, in API
order, to the index location (defaults to index.path). The location may be
a local path or s3://bucket/key; a .parquet suffix selects Parquet output.`,
	Args: cobra.NoArgs,
	RunE: runIndexFetch,
}

var indexConvertCmd = &cobra.Command{
	Use:   "convert <source> <destination>",
	Short: "Convert an index between text and Parquet formats",
	Args:  cobra.ExactArgs(2),
	RunE:  runIndexConvert,
}

func init() {
	indexFetchCmd.Flags().Int32Var(&fetchLimit, "limit", index.DefaultLimit, "number of Pokemon to list")
	indexFetchCmd.Flags().StringVar(&fetchOut, "out", "", "destination (defaults to index.path)")
	indexFetchCmd.Flags().StringVar(&fetchOutFormat, "out-format", index.FormatAuto, "output format: auto, text or parquet")

	indexConvertCmd.Flags().StringVar(&convertFrom, "from", index.FormatAuto, "source format: auto, text or parquet")
	indexConvertCmd.Flags().StringVar(&convertTo, "to", index.FormatAuto, "destination format: auto, text or parquet")

	indexCmd.AddCommand(indexFetchCmd)
	indexCmd.AddCommand(indexConvertCmd)
}

func runIndexFetch(cmd *cobra.Command, args []string) error {
	destination := fetchOut
	if destination == "" {
		destination = cfg.Index.Path
	}
	client := pokeapi.NewClient(cfg.Api.BaseUrl, cfg.Api.TimeoutDuration(), sugar)
	store := storage.NewStore(cfg.Aws.Region, sugar)
	count, err := index.Refresh(cmd.Context(), client, store, destination, fetchOutFormat, fetchLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", count, destination)
	return nil
}

func runIndexConvert(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]
	store := storage.NewStore(cfg.Aws.Region, sugar)
	ix, err := index.Load(cmd.Context(), store, source, convertFrom)
	if err != nil {
		return err
	}
	if err := index.Save(cmd.Context(), store, destination, convertTo, ix.Entries()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", ix.Len(), destination)
	return nil
}
