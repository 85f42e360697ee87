// Command invindex builds an inverted index over a line-oriented
// document collection and answers multi-term AND-queries against a
// previously persisted index.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/searchcore/invindex/pkg/config"
	"github.com/searchcore/invindex/pkg/logger"
)

func main() {
	app := cli.NewApp()
	app.Name = "invindex"
	app.HelpName = os.Args[0]
	app.Usage = "build an inverted index over a dataset and query it for document ids"
	app.HideVersion = true
	app.Commands = []cli.Command{
		buildCommand,
		queryCommand,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "invindex:", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the global logger.
func setup(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// storagePolicy resolves the effective policy: the CLI flag wins over
// the configured default.
func storagePolicy(ctx *cli.Context, cfg *config.Config) string {
	if p := ctx.String("storage-policy"); p != "" {
		return p
	}
	return cfg.Storage.Policy
}
