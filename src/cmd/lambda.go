package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-lookup/src/index"
	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
	"github.com/BielosX/wombat/poke-lookup/src/storage"
)

type RefreshRequest struct {
	Limit       int32  `json:"limit"`
	Destination string `json:"destination"`
	Format      string `json:"format"`
}

type RefreshResult struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the index refresh as an AWS Lambda handler",
	Long: `lambda starts the AWS Lambda runtime loop. Each invocation rebuilds the
name index from PokeAPI and writes it to the requested destination,
typically an s3:// location read by interactive runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lambda.Start(handleRefresh)
		return nil
	},
}

func handleRefresh(ctx context.Context, request RefreshRequest) (*RefreshResult, error) {
	sugar.Infof("Starting Refresh Handler, limit: %d, destination: %s, format: %s",
		request.Limit,
		request.Destination,
		request.Format)
	destination := request.Destination
	if destination == "" {
		destination = cfg.Index.Path
	}
	client := pokeapi.NewClient(cfg.Api.BaseUrl, cfg.Api.TimeoutDuration(), sugar)
	store := storage.NewStore(cfg.Aws.Region, sugar)
	count, err := index.Refresh(ctx, client, store, destination, request.Format, request.Limit)
	if err != nil {
		sugar.Errorf("Failed to refresh index: %s", err)
		return nil, err
	}
	sugar.Infof("Wrote %d entries to %s", count, destination)
	return &RefreshResult{Destination: destination, Count: count}, nil
}
