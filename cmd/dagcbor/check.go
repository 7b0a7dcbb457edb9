package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	dagcbor "github.com/signadot/go-dagcbor"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	bad := 0
	err = eachPayload(cc, args, func(name string, data []byte) error {
		if _, err := dagcbor.Decode(data, cfg.decOpts()...); err != nil {
			bad++
			if !cfg.Quiet {
				printDiag(os.Stderr, cfg.colorDiag(os.Stderr), name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// printDiag writes a decode diagnostic with the payload name on the
// first line and byte position lines highlighted.
func printDiag(w io.Writer, colored bool, name string, err error) {
	head := color.New(color.FgRed, color.Bold)
	pos := color.New(color.FgCyan)
	if !colored {
		head.DisableColor()
		pos.DisableColor()
	}
	lines := strings.Split(err.Error(), "\n")
	head.Fprintf(w, "%s: %s\n", name, lines[0])
	for _, line := range lines[1:] {
		if strings.HasPrefix(strings.TrimLeft(line, `\ `), "At byte #") {
			pos.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}
