package commands

import (
	"fmt"

	"github.com/arikiri/imagedup/pkg/engine"
	"github.com/urfave/cli/v2"
)

// Algorithms handles the algorithms command.
func Algorithms(c *cli.Context) error {
	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}

	for _, name := range eng.Algorithms() {
		fmt.Println(name)
	}
	return nil
}
