package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/eip712"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/store"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	additivesigning "github.com/luxfi/nero-mpc-core/protocols/additive/signing"
	multiplicativesigning "github.com/luxfi/nero-mpc-core/protocols/multiplicative/signing"
)

var (
	messageHex    string
	messageFile   string
	personalSign  bool
	outputSigFile string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Run a 2-of-2 threshold signature over a message hash",
	RunE:  runSign,
}

func init() {
	signCmd.Flags().StringVar(&messageHex, "message", "", "hex-encoded 32-byte message hash to sign (with --personal: message to hash with the EIP-191 prefix)")
	signCmd.Flags().StringVar(&messageFile, "message-file", "", "file whose contents are signed as the 32-byte message hash (with --personal: hashed with the EIP-191 prefix)")
	signCmd.Flags().BoolVar(&personalSign, "personal", false, "apply the EIP-191 personal-message prefix before hashing")
	signCmd.Flags().StringVarP(&outputSigFile, "output", "o", "signature.json", "output file for the combined signature")
}

func loadMessage() ([]byte, error) {
	switch {
	case messageFile != "":
		return os.ReadFile(messageFile)
	case messageHex != "":
		return hex.DecodeString(messageHex)
	default:
		return nil, fmt.Errorf("either --message or --message-file must be specified")
	}
}

func digestMessage(raw []byte) [32]byte {
	if personalSign {
		return eip712.PersonalMessageDigest(raw)
	}
	var digest [32]byte
	copy(digest[:], raw)
	return digest
}

func runSign(cmd *cobra.Command, args []string) error {
	raw, err := loadMessage()
	if err != nil {
		return err
	}
	digest := digestMessage(raw)

	fs, err := store.NewFileStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}

	_, sideA, sideB := transport.NewLoopback()
	ctx := cmd.Context()
	group, gctx := errgroup.WithContext(ctx)

	var sigR, sigS, sigFull string
	var sigV int

	switch protocolName {
	case "additive":
		shareA, err := loadAdditiveShare(fs, partyAlice)
		if err != nil {
			return fmt.Errorf("alice: %w", err)
		}
		shareB, err := loadAdditiveShare(fs, partyBob)
		if err != nil {
			return fmt.Errorf("bob: %w", err)
		}
		group.Go(func() error {
			res, err := additivesigning.Run(gctx, partyAlice, partyBob, shareA, digest, sideA)
			if err != nil {
				return fmt.Errorf("alice: %w", err)
			}
			sigR, sigS, sigV = res.R.Hex(), res.S.Hex(), res.V
			sigFull = hex.EncodeToString(res.FullSignature)
			return nil
		})
		group.Go(func() error {
			_, err := additivesigning.Run(gctx, partyBob, partyAlice, shareB, digest, sideB)
			if err != nil {
				return fmt.Errorf("bob: %w", err)
			}
			return nil
		})
	case "multiplicative":
		shareA, err := loadMultiplicativeShare(fs, partyAlice)
		if err != nil {
			return fmt.Errorf("alice: %w", err)
		}
		shareB, err := loadMultiplicativeShare(fs, partyBob)
		if err != nil {
			return fmt.Errorf("bob: %w", err)
		}
		group.Go(func() error {
			res, err := multiplicativesigning.Run(gctx, partyAlice, partyBob, shareA, digest, sideA)
			if err != nil {
				return fmt.Errorf("alice: %w", err)
			}
			sigR, sigS, sigV = res.R, res.S, res.V
			return nil
		})
		group.Go(func() error {
			_, err := multiplicativesigning.Run(gctx, partyBob, partyAlice, shareB, digest, sideB)
			if err != nil {
				return fmt.Errorf("bob: %w", err)
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown protocol: %s", protocolName)
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("signing failed: %w", err)
	}

	out := struct {
		R             string `json:"r"`
		S             string `json:"s"`
		V             int    `json:"v"`
		FullSignature string `json:"fullSignature,omitempty"`
	}{R: sigR, S: sigS, V: sigV, FullSignature: sigFull}

	blob, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputSigFile, blob, 0o600); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	fmt.Printf("Signature: r=%s s=%s v=%d\n", sigR, sigS, sigV)
	fmt.Printf("Written to %s\n", outputSigFile)
	return nil
}

func loadAdditiveShare(fs *store.FileStore, partyID string) (keyshare.Additive, error) {
	var share keyshare.Additive
	if err := loadShare(fs, partyID, &share); err != nil {
		return keyshare.Additive{}, err
	}
	if !share.VerifyIntegrity() {
		return keyshare.Additive{}, fmt.Errorf("key share for %s failed integrity check", partyID)
	}
	return share, nil
}

func loadMultiplicativeShare(fs *store.FileStore, partyID string) (keyshare.Multiplicative, error) {
	var share keyshare.Multiplicative
	if err := loadShare(fs, partyID, &share); err != nil {
		return keyshare.Multiplicative{}, err
	}
	return share, nil
}

func loadShare(fs *store.FileStore, partyID string, out any) error {
	blob, ok, err := fs.Get(context.Background(), shareKey(protocolName, partyID))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no key share found for %s in %s (run keygen first)", partyID, dataDir)
	}
	var env store.Envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return err
	}
	plaintext, err := store.OpenEnvelope([]byte(password), env, iterations)
	if err != nil {
		return err
	}
	return json.Unmarshal(plaintext, out)
}
