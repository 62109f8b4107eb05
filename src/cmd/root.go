package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/BielosX/wombat/poke-lookup/src/config"
	"github.com/BielosX/wombat/poke-lookup/src/index"
	"github.com/BielosX/wombat/poke-lookup/src/logging"
	"github.com/BielosX/wombat/poke-lookup/src/pokeapi"
	"github.com/BielosX/wombat/poke-lookup/src/render"
	"github.com/BielosX/wombat/poke-lookup/src/session"
	"github.com/BielosX/wombat/poke-lookup/src/storage"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
	sugar   *zap.SugaredLogger
)

// flagKeys maps config keys to the persistent flags overriding them.
var flagKeys = map[string]string{
	"index.path":    "index",
	"index.format":  "index-format",
	"output.format": "output",
	"output.links":  "links",
	"log.level":     "log-level",
	"log.file":      "log-file",
}

var rootCmd = &cobra.Command{
	Use:   "poke-lookup",
	Short: "Look up Pokemon by name and show their PokeAPI attributes",
	Long: `poke-lookup loads a name,url index file, then prompts for Pokemon names
and renders weight, height, types, abilities and sprite for each match.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		logger, err := logging.New(loaded.Log)
		if err != nil {
			return err
		}
		cfg = loaded
		sugar = logger.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLogger()
	},
	RunE: runLookup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file path")
	flags.StringP("index", "i", "", "index location: local path or s3://bucket/key")
	flags.String("index-format", "", "index format: auto, text or parquet")
	flags.StringP("output", "o", "", "output format: table or json")
	flags.String("links", "", "terminal hyperlinks: auto, always or never")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	for key, flag := range flagKeys {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(flag)))
	}

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with a context cancelled on SIGINT/SIGTERM. After the
// first signal the handler is released, so a second one kills the process.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()
	return rootCmd.ExecuteContext(ctx)
}

func syncLogger() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func linksEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store := storage.NewStore(cfg.Aws.Region, sugar)
	ix, err := index.Load(ctx, store, cfg.Index.Path, cfg.Index.Format)
	if err != nil {
		return err
	}
	sugar.Infof("Loaded %d index entries from %s", ix.Len(), cfg.Index.Path)

	client := pokeapi.NewClient(cfg.Api.BaseUrl, cfg.Api.TimeoutDuration(), sugar)
	renderer := render.New(cmd.OutOrStdout(), render.Options{
		Format: cfg.Output.Format,
		Links:  linksEnabled(cfg.Output.Links),
	})
	sess := session.New(ix, client, renderer, cmd.InOrStdin(), sugar.With("session", uuid.NewString()))
	if err := sess.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			sugar.Info("Interrupted")
			return nil
		}
		return err
	}
	return nil
}
