// Package address derives Ethereum addresses from secp256k1 public keys and
// renders them with EIP-55 mixed-case checksums (spec §4.M). Grounded on
// go-ethereum's canonical Keccak-256 and common.Address checksum encoder
// rather than a hand-rolled reimplementation, since the ecosystem's own
// reference implementation is directly importable.
package address

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// FromPoint derives the EIP-55 checksummed address of a public key point:
// the low 20 bytes of Keccak-256(uncompressed_pubkey[1:]) (spec §4.M).
func FromPoint(p curve.Point) (string, error) {
	uncompressed, err := p.EncodeUncompressed()
	if err != nil {
		return "", err
	}
	digest := crypto.Keccak256(uncompressed[1:])
	addr := common.BytesToAddress(digest[12:])
	return addr.Hex(), nil
}

// IsValidChecksum reports whether addr carries a valid EIP-55 mixed-case
// checksum, rejecting all-lowercase/all-uppercase inputs that happen to
// decode as hex but were never checksum-encoded.
func IsValidChecksum(addr string) bool {
	if !common.IsHexAddress(addr) {
		return false
	}
	return common.HexToAddress(addr).Hex() == addr
}
