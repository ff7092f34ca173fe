package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/toj-cli/toj/internal/ancestry"
	"github.com/toj-cli/toj/internal/model"
)

const version = "0.2.0"

var (
	destinations = struct {
		leaf      string
		verbose   bool
		skipEmpty bool
		maxDepth  int
		format    string
		compact   bool
		outputter struct {
			output string
		}
	}{}

	tojCmd = cli.Command{
		Name:      "toj",
		Usage:     "Merge a JSON model with the same-named models in its parent directories",
		UsageText: "toj [options] <leaf-file-path>",
		Version:   version,
		Description: "Models are merged from the top-most parent down to the leaf. Children may add keys, " +
			"override values of existing keys, and delete keys by setting them to null.",
		Commands: []*cli.Command{
			&chainCmd,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "See details",
				Destination: &destinations.verbose,
			},
			&cli.BoolFlag{
				Name:        "skip-empty",
				Aliases:     []string{"s"},
				Usage:       "Traverse to root of file system",
				Destination: &destinations.skipEmpty,
			},
			&cli.IntFlag{
				Name:        "max-depth",
				Usage:       "The maximum number of parent directories to search; 0 searches all of them.",
				Destination: &destinations.maxDepth,
				Validator: func(depth int) error {
					if depth < 0 {
						return fmt.Errorf("invalid max-depth: %d, must not be negative", depth)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "The encoding of the merged model, one of 'json', 'toml', or 'yaml'. TOML refuses integers beyond 64 bits.",
				Value:       formatJSON,
				Destination: &destinations.format,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
				Action: func(_ context.Context, command *cli.Command, s string) error {
					return command.Set("format", strings.ToLower(s))
				},
				Validator: func(s string) error {
					switch strings.ToLower(s) {
					case formatJSON, formatTOML, formatYAML:
						return nil
					default:
						return fmt.Errorf("invalid format: %s, must be one of json, toml, or yaml", s)
					}
				},
			},
			&cli.BoolFlag{
				Name:        "compact",
				Usage:       "Print JSON on a single line.",
				Destination: &destinations.compact,
			},
			outputFlag,
		},
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

			merged, err := model.Compute(destinations.leaf, locateOptions())
			if err != nil {
				return fmt.Errorf("computing model: %w", err)
			}

			rendered, err := render(merged, destinations.format, destinations.compact)
			if err != nil {
				return fmt.Errorf("rendering model as %s: %w", destinations.format, err)
			}
			return output(rendered)
		},
	}
)

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// validateLeaf rejects anything but an existing regular file.
func validateLeaf(path string) error {
	if path == "" {
		return errors.New("leaf file path must be specified")
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return cli.Exit(fmt.Sprintf("Error, invalid file: %s", filepath.Clean(path)), 1)
	}
	return nil
}

func locateOptions() ancestry.Options {
	opts := ancestry.Options{
		SkipEmpty: destinations.skipEmpty,
		MaxDepth:  destinations.maxDepth,
	}
	if destinations.verbose {
		opts.Logger = log.NewWithOptions(os.Stdout, log.Options{})
	}
	return opts
}

func main() {
	if err := tojCmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
