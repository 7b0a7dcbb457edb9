package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// readPayload reads one payload argument, with "-" standing for the
// command's input stream.
func readPayload(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("could not read input: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", arg, err)
	}
	return d, nil
}

// eachPayload applies fn to every payload named in args, defaulting
// to the input stream when no args are given.
func eachPayload(cc *cli.Context, args []string, fn func(name string, data []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		d, err := readPayload(cc, arg)
		if err != nil {
			return err
		}
		if err := fn(arg, d); err != nil {
			return err
		}
	}
	return nil
}
