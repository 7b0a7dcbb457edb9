package main

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/scott-cotton/cli"

	dagcbor "github.com/signadot/go-dagcbor"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachPayload(cc, args, func(name string, data []byte) error {
		node, err := dagcbor.Decode(data, cfg.decOpts()...)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		// re-encode without framing so the diagnostic notation covers
		// exactly one item.
		item, err := dagcbor.Encode(node)
		if err != nil {
			return err
		}
		diag, err := cbor.Diagnose(item)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, diag)
		return err
	})
}
