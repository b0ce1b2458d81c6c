package commands

import (
	"fmt"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/arikiri/imagedup/pkg/engine"
	"github.com/urfave/cli/v2"
)

// Compare handles the compare command.
func Compare(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("exactly two image arguments are required", 1)
	}

	algorithm, err := api.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	duplicate, err := eng.AreDuplicates(c.Args().Get(0), c.Args().Get(1), algorithm, c.Float64("threshold"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("compare failed: %v", err), 1)
	}

	if duplicate {
		fmt.Println("duplicate")
	} else {
		fmt.Println("not a duplicate")
	}
	return nil
}
