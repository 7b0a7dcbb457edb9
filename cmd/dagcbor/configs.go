package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/signadot/go-dagcbor/decode"
	"github.com/signadot/go-dagcbor/encode"
)

type MainConfig struct {
	Multicodec bool `cli:"name=m aliases=multicodec desc='payloads carry the dag-cbor multicodec prefix'"`
	Color      bool `cli:"name=color desc='color diagnostics'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) decOpts() []decode.DecodeOption {
	var res []decode.DecodeOption
	if cfg.Multicodec {
		res = append(res, decode.RequireMulticodec(true))
	}
	return res
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Multicodec {
		res = append(res, encode.Multicodec(true))
	}
	return res
}

// colorDiag reports whether diagnostics written to w should be
// colored: an explicit -color wins, otherwise terminals get color.
func (cfg *MainConfig) colorDiag(w io.Writer) bool {
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='suppress diagnostics, only set the exit status'"`
	Check *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type EncConfig struct {
	*MainConfig

	YAML bool `cli:"name=y aliases=yaml desc='read YAML input instead of JSON'"`
	Enc  *cli.Command
}

type DecConfig struct {
	*MainConfig

	Dec *cli.Command
}

type CidConfig struct {
	*MainConfig

	Hash string
	Cid  *cli.Command
}

func (cfg *CidConfig) hashOpt(_ *cli.Context, a string) (any, error) {
	switch a {
	case "sha2-256", "blake3":
		cfg.Hash = a
		return a, nil
	}
	return nil, fmt.Errorf("%w: unknown hash function %q", cli.ErrUsage, a)
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}
