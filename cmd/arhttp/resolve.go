package main

import (
	"fmt"

	"github.com/arloliu/arhttp"
	"github.com/spf13/cobra"
)

const absent = "<absent>"

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ASSET...",
		Short: "Resolve one or more asset paths",
		Long: `Resolve prints one "asset<TAB>location" line per argument. Assets that
cannot be resolved print <absent> and make the command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args)
		},
	}
}

func runResolve(cmd *cobra.Command, opts *rootOptions, assets []string) error {
	cfg, err := opts.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	r, err := arhttp.New().
		WithConfig(cfg).
		WithLocal(arhttp.NewFSResolver(nil, arhttp.WithSearchPaths(cfg.SearchPaths...))).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	missing := 0
	for _, asset := range assets {
		loc := r.Resolve(cmd.Context(), asset)
		if loc == "" {
			missing++
			loc = absent
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", asset, loc)
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d asset(s) unresolved", missing, len(assets))
	}

	return nil
}
