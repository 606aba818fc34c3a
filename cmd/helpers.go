package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/orgchart/internal/config"
	"github.com/ziadkadry99/orgchart/internal/orggraph"
	"github.com/ziadkadry99/orgchart/internal/progress"
	"github.com/ziadkadry99/orgchart/internal/snapshot"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `orgchart init` to create a config file", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using config %s (snapshot %s)\n", cfgFile, cfg.SnapshotPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadGraph reads the snapshot files named by cfg, reporting per-file
// progress, and normalizes them into a graph.
func loadGraph(cfg *config.Config, rep progress.Reporter) (*orggraph.Graph, error) {
	paths, err := snapshot.ExpandGlob(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}

	export := snapshot.Export{}
	if rep != nil {
		rep.Start(len(paths))
	}
	for i, path := range paths {
		shard, err := snapshot.LoadExport(path)
		if err != nil {
			return nil, err
		}
		export.Merge(shard)
		if rep != nil {
			rep.Update(i+1, path)
		}
	}
	if rep != nil {
		rep.Finish()
	}

	return orggraph.Normalize(export), nil
}
