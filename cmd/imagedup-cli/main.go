package main

import (
	"fmt"
	"os"

	"github.com/arikiri/imagedup/cmd/imagedup-cli/commands"
	"github.com/arikiri/imagedup/pkg/api"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "imagedup",
		Version: api.VersionString,
		Usage:   "Find duplicate and near-duplicate images across folders",
		Commands: []*cli.Command{
			{
				Name:      "list-images",
				Usage:     "List every supported image file under one or more folders",
				ArgsUsage: "FOLDER [FOLDER...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Descend into subfolders"},
				},
				Action: commands.ListImages,
			},
			{
				Name:  "detect",
				Usage: "Detect duplicate/near-duplicate images across folders",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Descend into subfolders"},
					&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "exact, average, difference, perceptual, or orb", Value: "perceptual"},
					&cli.Float64Flag{Name: "threshold", Aliases: []string{"t"}, Usage: "Similarity threshold (0-100)", Value: api.DefaultSimilarityThreshold},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Number of fingerprinting workers", Value: api.DefaultNumWorkers},
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML engine config file overriding --workers"},
				},
				ArgsUsage: "FOLDER [FOLDER...]",
				Action:    commands.Detect,
			},
			{
				Name:   "algorithms",
				Usage:  "List supported fingerprinting algorithms",
				Action: commands.Algorithms,
			},
			{
				Name:      "stats",
				Usage:     "Summarize a detection request without running it",
				ArgsUsage: "FOLDER [FOLDER...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Descend into subfolders"},
					&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "perceptual"},
					&cli.Float64Flag{Name: "threshold", Aliases: []string{"t"}, Value: api.DefaultSimilarityThreshold},
				},
				Action: commands.Stats,
			},
			{
				Name:      "folder-stats",
				Usage:     "Count files, images, and subfolders beneath a single folder",
				ArgsUsage: "FOLDER",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Descend into subfolders"},
				},
				Action: commands.FolderStats,
			},
			{
				Name:      "compare",
				Usage:     "Check whether two specific images are duplicates",
				ArgsUsage: "IMAGE1 IMAGE2",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "perceptual"},
					&cli.Float64Flag{Name: "threshold", Aliases: []string{"t"}, Value: api.DefaultSimilarityThreshold},
				},
				Action: commands.Compare,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
