package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// FileReader binds a string flag naming a JSON file and decodes it into T.
// A value of "-" reads from stdin.
type FileReader[T any] struct {
	name      string
	usage     string
	flagValue string
	stdin     io.Reader
}

// NewFileReader creates a reader for the flag called name.
func NewFileReader[T any](name, usage string) *FileReader[T] {
	return &FileReader[T]{name: name, usage: usage, stdin: os.Stdin}
}

// Flag returns the cli flag that sets the file path.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        fr.name,
		Usage:       fr.usage,
		Destination: &fr.flagValue,
	}
}

// Set assigns the path directly, bypassing flag parsing.
func (fr *FileReader[T]) Set(path string) { fr.flagValue = path }

// Provided reports whether a path was given.
func (fr *FileReader[T]) Provided() bool { return fr.flagValue != "" }

// Read decodes the named file. It fails when no path was given.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	if fr.flagValue == "" {
		return input, fmt.Errorf("--%s not provided", fr.name)
	}

	reader := fr.stdin
	if fr.flagValue != "-" {
		f, err := os.Open(fr.flagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
