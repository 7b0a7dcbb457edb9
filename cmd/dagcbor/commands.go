package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "dagcbor").
		WithSynopsis("dagcbor [opts] command [opts] [files]").
		WithDescription("dagcbor checks, inspects and produces strict canonical DAG-CBOR payloads.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dagcborMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			ViewCommand(cfg),
			EncCommand(cfg),
			DecCommand(cfg),
			CidCommand(cfg),
			DumpCommand(cfg))
}

func dagcborMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c", "ck").
		WithOpts(opts...).
		WithSynopsis("check [files]").
		WithDescription("check that payloads are strict canonical DAG-CBOR").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view payloads in CBOR diagnostic notation").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func EncCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("enc").
		WithAliases("e").
		WithOpts(opts...).
		WithSynopsis("enc [-y] [files]").
		WithDescription("encode JSON (or YAML) documents as DAG-CBOR").
		WithRun(func(cc *cli.Context, args []string) error {
			return enc(cfg, cc, args)
		})
	cfg.Enc = cmd
	return cmd
}

func DecCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dec").
		WithAliases("d").
		WithSynopsis("dec [files]").
		WithDescription("decode DAG-CBOR payloads to JSON").
		WithRun(func(cc *cli.Context, args []string) error {
			return dec(cfg, cc, args)
		})
	cfg.Dec = cmd
	return cmd
}

func CidCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CidConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "hash",
			Description: "multihash function: sha2-256 or blake3",
			Type:        cli.NamedFuncOpt(cfg.hashOpt, "(function)"),
		},
	}
	cmd := cli.NewCommand("cid").
		WithOpts(opts...).
		WithSynopsis("cid [-hash (function)] [files]").
		WithDescription("print the CIDv1 of canonical DAG-CBOR payloads").
		WithRun(func(cc *cli.Context, args []string) error {
			return cidRun(cfg, cc, args)
		})
	cfg.Cid = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dump").
		WithSynopsis("dump [files]").
		WithDescription("list decoded items with their encoded byte counts").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}
