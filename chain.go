package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/toj-cli/toj/internal/ancestry"
)

var chainCmd = cli.Command{
	Name:      "chain",
	Usage:     "List the models that would be merged, top-most parent first, without reading them",
	UsageText: "toj chain [options] <leaf-file-path>",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:        "leaf-file-path",
			Destination: &destinations.leaf,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		if err := validateLeaf(destinations.leaf); err != nil {
			return err
		}
		chain, err := ancestry.Locate(destinations.leaf, locateOptions())
		if err != nil {
			return fmt.Errorf("locating models: %w", err)
		}
		return output(listChain(chain))
	},
}

func listChain(chain ancestry.Chain) bytes.Buffer {
	var listing bytes.Buffer
	for _, path := range chain {
		listing.WriteString(path)
		listing.WriteByte('\n')
	}
	return listing
}
