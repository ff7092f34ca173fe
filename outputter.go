package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

var outputFlag = &cli.StringFlag{
	Name:        "output",
	DefaultText: "STDOUT",
	Usage:       "The destination to which to write the result.",
	Destination: &destinations.outputter.output,
	Aliases:     []string{"o"},
	TakesFile:   true,
	Config: cli.StringConfig{
		TrimSpace: true,
	},
}

func output(content bytes.Buffer) error {
	if destinations.outputter.output != "" {
		return writeFileAtomically(filepath.Clean(destinations.outputter.output), content.Bytes(), 0o644)
	}
	_, err := io.Copy(os.Stdout, &content)
	return err
}

// writeFileAtomically writes content next to destination and renames it into
// place, so readers never observe a partially written file. The temporary file
// is removed on every failure path.
func writeFileAtomically(destination string, content []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(destination), ".toj-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmpFile.Write(content); err != nil {
		return err
	}
	if err = tmpFile.Sync(); err != nil {
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	// On windows rename fails if the destination already exists.
	return os.Rename(tmpName, destination)
}
