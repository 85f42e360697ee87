package main

import (
	"bufio"
	"context"
	"os"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/searchcore/invindex/internal/searcher"
	"github.com/searchcore/invindex/internal/source"
	"github.com/searchcore/invindex/pkg/metrics"
	pkgredis "github.com/searchcore/invindex/pkg/redis"
)

var queryCommand = cli.Command{
	Name:  "query",
	Usage: "Query a persisted inverted index and print matching document ids",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "index", Usage: "path to the persisted index"},
		cli.StringFlag{Name: "storage-policy", Usage: "storage policy to load the index with: \"json\" or \"struct\""},
		cli.StringSliceFlag{Name: "query", Usage: "query terms separated by spaces; repeat the flag for multiple queries"},
		cli.StringFlag{Name: "query-file", Usage: "path to a file with one query per line (\"-\" for stdin)"},
		cli.StringFlag{Name: "encoding", Usage: "text encoding of the query file: utf-8, cp1251, koi8-r, or utf-16"},
		cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
	},
	Action: runQuery,
}

func runQuery(cliCtx *cli.Context) error {
	cfg, err := setup(cliCtx)
	if err != nil {
		return err
	}
	indexPath := cliCtx.String("index")
	if indexPath == "" {
		return cli.NewExitError("missing required flag --index", 2)
	}

	queries, err := collectQueries(cliCtx, cfg.Source.Encoding)
	if err != nil {
		return err
	}

	m := metrics.New()
	var cache *searcher.QueryCache
	if cfg.Cache.Enabled {
		client, err := pkgredis.NewClient(cfg.Cache.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = searcher.NewCache(client, cfg.Cache.Redis, m)
	}

	s, err := searcher.Open(indexPath, storagePolicy(cliCtx, cfg), m, cache)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	return s.Run(context.Background(), queries, out)
}

// collectQueries gathers queries from repeated --query flags, falling
// back to the query file or stdin.
func collectQueries(cliCtx *cli.Context, defaultEncoding string) ([][]string, error) {
	if flagQueries := cliCtx.StringSlice("query"); len(flagQueries) > 0 {
		queries := make([][]string, 0, len(flagQueries))
		for _, q := range flagQueries {
			queries = append(queries, strings.Fields(q))
		}
		return queries, nil
	}

	encoding := cliCtx.String("encoding")
	if encoding == "" {
		encoding = defaultEncoding
	}

	path := cliCtx.String("query-file")
	if path == "" || path == "-" {
		return source.ReadQueries(os.Stdin, encoding)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.ReadQueries(f, encoding)
}
