package main

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/scott-cotton/cli"
	"github.com/zeebo/blake3"

	dagcbor "github.com/signadot/go-dagcbor"
)

func cidRun(cfg *CidConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cid.Parse(cc, args)
	if err != nil {
		cfg.Cid.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachPayload(cc, args, func(name string, data []byte) error {
		node, err := dagcbor.Decode(data, cfg.decOpts()...)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		// hash the canonical item bytes, not the framed payload.
		block, err := dagcbor.Encode(node)
		if err != nil {
			return err
		}
		mh, err := blockHash(cfg.Hash, block)
		if err != nil {
			return err
		}
		id := cid.NewCidV1(uint64(multicodec.DagCbor), mh)
		_, err = fmt.Fprintln(cc.Out, id.String())
		return err
	})
}

func blockHash(fn string, block []byte) (multihash.Multihash, error) {
	switch fn {
	case "", "sha2-256":
		return multihash.Sum(block, multihash.SHA2_256, -1)
	case "blake3":
		sum := blake3.Sum256(block)
		return multihash.Encode(sum[:], multihash.BLAKE3)
	}
	return nil, fmt.Errorf("unknown hash function %q", fn)
}
