package commands

import (
	"fmt"

	"github.com/arikiri/imagedup/pkg/engine"
	"github.com/urfave/cli/v2"
)

// ListImages handles the list-images command.
func ListImages(c *cli.Context) error {
	folders := c.Args().Slice()
	if len(folders) == 0 {
		return cli.Exit("at least one folder argument is required", 1)
	}

	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	paths, err := eng.ListImages(folders, c.Bool("recursive"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("list-images failed: %v", err), 1)
	}

	for _, path := range paths {
		fmt.Println(path)
	}
	fmt.Printf("\n%d image(s) found\n", len(paths))
	return nil
}
