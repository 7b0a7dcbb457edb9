package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	dagcbor "github.com/signadot/go-dagcbor"
	"github.com/signadot/go-dagcbor/ipld"
)

func enc(cfg *EncConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Enc.Parse(cc, args)
	if err != nil {
		cfg.Enc.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachPayload(cc, args, func(name string, data []byte) error {
		v, err := unmarshalInput(cfg, data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		node, err := ipld.FromGo(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		_, err = dagcbor.EncodeTo(node, cc.Out, cfg.encOpts()...)
		return err
	})
}

func unmarshalInput(cfg *EncConfig, data []byte) (any, error) {
	var v any
	if cfg.YAML {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
