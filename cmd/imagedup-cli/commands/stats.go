package commands

import (
	"fmt"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/arikiri/imagedup/pkg/engine"
	"github.com/urfave/cli/v2"
)

// Stats handles the stats command.
func Stats(c *cli.Context) error {
	folders := c.Args().Slice()
	if len(folders) == 0 {
		return cli.Exit("at least one folder argument is required", 1)
	}

	algorithm, err := api.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	request := api.DetectionRequest{
		FolderPaths:         folders,
		Algorithm:           algorithm,
		SimilarityThreshold: thresholdFlag(c),
		Recursive:           c.Bool("recursive"),
	}

	stats, err := eng.Stats(request)
	if err != nil {
		return cli.Exit(fmt.Sprintf("stats failed: %v", err), 1)
	}

	fmt.Printf("Images:    %d\n", stats.ImageCount)
	fmt.Printf("Folders:   %d\n", stats.FolderCount)
	fmt.Printf("Algorithm: %s\n", stats.AlgorithmName)
	fmt.Printf("Threshold: %.1f\n", stats.SimilarityThreshold)
	return nil
}

// FolderStats handles the folder-stats command.
func FolderStats(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one folder argument is required", 1)
	}

	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	stats, err := eng.FolderStats(c.Args().First(), c.Bool("recursive"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("folder-stats failed: %v", err), 1)
	}

	fmt.Printf("Total files: %d\n", stats.TotalFiles)
	fmt.Printf("Images:      %d\n", stats.ImageCount)
	fmt.Printf("Folders:     %d\n", stats.FolderCount)
	return nil
}
