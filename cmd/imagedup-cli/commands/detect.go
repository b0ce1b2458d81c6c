package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arikiri/imagedup/internal/utils"
	"github.com/arikiri/imagedup/pkg/api"
	"github.com/arikiri/imagedup/pkg/engine"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// Detect handles the detect command.
func Detect(c *cli.Context) error {
	folders := c.Args().Slice()
	if len(folders) == 0 {
		return cli.Exit("at least one folder argument is required", 1)
	}

	algorithm, err := api.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg := engine.DefaultConfig()
	cfg.NumWorkers = c.Int("workers")

	if configPath := c.String("config"); configPath != "" {
		cm := utils.NewConfigManager(configPath)
		if cm.ConfigExists() {
			if err := cm.LoadConfig(&cfg); err != nil {
				return cli.Exit(fmt.Sprintf("failed to load config %s: %v", configPath, err), 1)
			}
		}
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupInterruptHandler(cancel)

	request := api.DetectionRequest{
		FolderPaths:         folders,
		Algorithm:           algorithm,
		SimilarityThreshold: thresholdFlag(c),
		Recursive:           c.Bool("recursive"),
	}

	var tracker *utils.ProgressTracker
	groups, err := eng.DetectWithProgress(ctx, request, func(current, total int) {
		if tracker == nil {
			tracker = utils.NewProgressTracker(total, "Fingerprinting")
		}
		tracker.Set(current)
	})
	if tracker != nil {
		tracker.Complete()
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("detection failed: %v", err), 1)
	}

	displayGroups(groups)
	return nil
}

func displayGroups(groups []api.DuplicateGroup) {
	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return
	}

	var totalImages int
	var totalBytes int64
	for i, group := range groups {
		fmt.Printf("Group %d (%d images, threshold %.1f):\n", i+1, len(group.Images), group.SimilarityThreshold)
		for _, img := range group.Images {
			fmt.Printf("  %s (%dx%d, %s)\n", img.Path, img.Width, img.Height, humanize.Bytes(uint64(img.SizeBytes)))
			totalBytes += img.SizeBytes
		}
		totalImages += len(group.Images)
	}
	fmt.Printf("\n%d group(s), %d image(s) total, %s\n", len(groups), totalImages, humanize.Bytes(uint64(totalBytes)))
}

// thresholdFlag returns a pointer to the --threshold value if the caller
// actually set it (including --threshold 0), or nil if the flag was never
// given, so the engine can tell "use the default" apart from an explicit 0.
func thresholdFlag(c *cli.Context) *float64 {
	if !c.IsSet("threshold") {
		return nil
	}
	t := c.Float64("threshold")
	return &t
}

func setupInterruptHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, stopping...")
		cancel()
	}()
}
