package main

import (
	"context"
	"time"

	"gopkg.in/urfave/cli.v1"

	"github.com/searchcore/invindex/internal/indexer"
	"github.com/searchcore/invindex/pkg/metrics"
)

var buildCommand = cli.Command{
	Name:  "build",
	Usage: "Build an inverted index from a dataset and store it on disk",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "dataset", Usage: "path to the dataset file (for the file source)"},
		cli.StringFlag{Name: "output", Usage: "path for the persisted index"},
		cli.StringFlag{Name: "storage-policy", Usage: "storage policy to dump the index with: \"json\" or \"struct\""},
		cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
	},
	Action: runBuild,
}

func runBuild(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	output := ctx.String("output")
	if output == "" {
		return cli.NewExitError("missing required flag --output", 2)
	}
	dataset := ctx.String("dataset")
	if dataset == "" && (cfg.Source.Kind == "" || cfg.Source.Kind == "file") {
		return cli.NewExitError("missing required flag --dataset", 2)
	}

	m := metrics.New()
	if cfg.Metrics.Enabled {
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	engine := indexer.New(cfg, m)
	return engine.Build(context.Background(), dataset, output, storagePolicy(ctx, cfg))
}
