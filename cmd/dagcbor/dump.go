package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/scott-cotton/cli"

	dagcbor "github.com/signadot/go-dagcbor"
	"github.com/signadot/go-dagcbor/decode"
	"github.com/signadot/go-dagcbor/ipld"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachPayload(cc, args, func(name string, data []byte) error {
		total := 0
		cb := func(n *ipld.Node, bytesRead int) {
			total += bytesRead
			fmt.Fprintf(cc.Out, "%-7s%8d  %s\n",
				strings.ToLower(n.Kind.String()), bytesRead, preview(n))
		}
		opts := append(cfg.decOpts(), decode.Callback(cb))
		if _, err := dagcbor.Decode(data, opts...); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		_, err := fmt.Fprintf(cc.Out, "total  %8d bytes\n", total)
		return err
	})
}

func preview(n *ipld.Node) string {
	switch n.Kind {
	case ipld.NullKind:
		return "null"
	case ipld.BoolKind:
		return strconv.FormatBool(n.Bool)
	case ipld.IntKind:
		return n.Int.String()
	case ipld.FloatKind:
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	case ipld.StringKind:
		return strconv.Quote(clip(n.String, 32))
	case ipld.BytesKind:
		return fmt.Sprintf("%d bytes", len(n.Bytes))
	case ipld.ListKind:
		return fmt.Sprintf("%d items", len(n.List))
	case ipld.MapKind:
		return fmt.Sprintf("%d entries", len(n.Map))
	case ipld.LinkKind:
		return n.Link.String()
	}
	return ""
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}
