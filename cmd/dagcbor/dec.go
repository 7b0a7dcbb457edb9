package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/scott-cotton/cli"

	dagcbor "github.com/signadot/go-dagcbor"
)

func dec(cfg *DecConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dec.Parse(cc, args)
	if err != nil {
		cfg.Dec.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachPayload(cc, args, func(name string, data []byte) error {
		node, err := dagcbor.Decode(data, cfg.decOpts()...)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		d, err := json.MarshalIndent(jsonable(node.AsGo()), "", "  ")
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out)
		return err
	})
}

// jsonable rewrites values encoding/json cannot represent faithfully,
// in the dag-json style: bytes as {"/": {"bytes": base64}} and links
// as {"/": cid}.
func jsonable(v any) any {
	switch x := v.(type) {
	case []byte:
		return map[string]any{"/": map[string]any{"bytes": base64.RawStdEncoding.EncodeToString(x)}}
	case cid.Cid:
		return map[string]any{"/": x.String()}
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = jsonable(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = jsonable(item)
		}
		return out
	}
	return v
}
