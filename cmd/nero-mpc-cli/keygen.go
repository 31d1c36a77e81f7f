package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/address"
	"github.com/luxfi/nero-mpc-core/pkg/store"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	additivekeygen "github.com/luxfi/nero-mpc-core/protocols/additive/keygen"
	multiplicativekeygen "github.com/luxfi/nero-mpc-core/protocols/multiplicative/keygen"
)

const (
	partyAlice = "alice"
	partyBob   = "bob"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Run a 2-of-2 distributed key generation between two local parties",
	RunE:  runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	fs, err := store.NewFileStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}

	_, sideA, sideB := transport.NewLoopback()

	ctx := cmd.Context()
	group, gctx := errgroup.WithContext(ctx)

	var jointA, jointB, addrA string

	switch protocolName {
	case "additive":
		group.Go(func() error {
			res, err := additivekeygen.Run(gctx, partyAlice, partyBob, sideA)
			if err != nil {
				return fmt.Errorf("alice: %w", err)
			}
			jointA = res.KeyShare.JointPublicKey
			point, err := res.KeyShare.JointPublicPoint()
			if err != nil {
				return err
			}
			addrA, err = address.FromPoint(point)
			if err != nil {
				return err
			}
			return persistShare(fs, protocolName, partyAlice, res.KeyShare)
		})
		group.Go(func() error {
			res, err := additivekeygen.Run(gctx, partyBob, partyAlice, sideB)
			if err != nil {
				return fmt.Errorf("bob: %w", err)
			}
			jointB = res.KeyShare.JointPublicKey
			return persistShare(fs, protocolName, partyBob, res.KeyShare)
		})
	case "multiplicative":
		group.Go(func() error {
			res, err := multiplicativekeygen.Run(gctx, partyAlice, partyBob, sideA)
			if err != nil {
				return fmt.Errorf("alice: %w", err)
			}
			jointA = res.KeyShare.JointPublicKey
			point, err := res.KeyShare.JointPublicPoint()
			if err != nil {
				return err
			}
			addrA, err = address.FromPoint(point)
			if err != nil {
				return err
			}
			return persistShare(fs, protocolName, partyAlice, res.KeyShare)
		})
		group.Go(func() error {
			res, err := multiplicativekeygen.Run(gctx, partyBob, partyAlice, sideB)
			if err != nil {
				return fmt.Errorf("bob: %w", err)
			}
			jointB = res.KeyShare.JointPublicKey
			return persistShare(fs, protocolName, partyBob, res.KeyShare)
		})
	default:
		return fmt.Errorf("unknown protocol: %s", protocolName)
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("keygen failed: %w", err)
	}

	if jointA != jointB {
		return fmt.Errorf("internal error: parties disagree on joint public key")
	}

	fmt.Printf("Key generation complete (%s protocol).\n", protocolName)
	fmt.Printf("Joint public key: %s\n", jointA)
	fmt.Printf("Address: %s\n", addrA)
	fmt.Printf("Shares written to %s as %s-%s.json and %s-%s.json\n", dataDir, protocolName, partyAlice, protocolName, partyBob)
	return nil
}

func persistShare(fs *store.FileStore, protocol, partyID string, share any) error {
	plaintext, err := json.Marshal(share)
	if err != nil {
		return err
	}
	env, err := store.SealEnvelope([]byte(password), plaintext, iterations)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return fs.Set(context.Background(), shareKey(protocol, partyID), blob)
}

func shareKey(protocol, partyID string) string {
	return protocol + "-" + partyID
}
