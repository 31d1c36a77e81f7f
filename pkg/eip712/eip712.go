// Package eip712 implements typed-data and personal-message hashing for
// Ethereum signing requests (spec §4.L): the EIP-712 domain/struct-hash
// digest and the EIP-191 personal-message prefix. Grounded on the
// packed-ABI-encode-then-Keccak idiom of
// other_examples/bc72bf06_gipsh-polymarket-bot-go__internal-clob-eip712.go.go
// and other_examples/8329ed0d_0gfoundation-0g-sandbox-billing__internal-voucher-eip712.go.go,
// generalized from those files' fixed order/voucher structs to an
// arbitrary caller-declared field list.
package eip712

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// FieldKind identifies how a Field's Value is ABI-encoded into its
// 32-byte slot (spec §4.L).
type FieldKind int

const (
	// KindBytes32 encodes Value (already a 32-byte digest or raw bytesN,
	// right-padded) verbatim.
	KindBytes32 FieldKind = iota
	// KindAddress left-pads a 20-byte address into its 32-byte slot.
	KindAddress
	// KindUint encodes Value as a big-endian, left-padded uintK.
	KindUint
	// KindInt encodes Value as intK's two's-complement 256-bit
	// representation: negative values fill the slot with 0xff rather than
	// zero-padding a magnitude (spec §4.L signed-integer encoding).
	KindInt
	// KindDynamic hashes Value (raw string or bytes payload) with
	// Keccak-256 before substituting the hash into the slot, per
	// EIP-712's treatment of `string`/`bytes` fields.
	KindDynamic
)

// Field is one member of a struct's encoded field list, supplied in type
// declaration order (the order baked into TypeHash).
type Field struct {
	Kind  FieldKind
	Bytes []byte   // KindBytes32, KindDynamic
	Addr  common.Address
	Int   *big.Int // KindUint, KindInt
}

var (
	minInt256 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxInt256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
)

// TypeHash returns keccak256(typeString), e.g.
// keccak256("Mail(address from,address to,string contents)").
func TypeHash(typeString string) [32]byte {
	return [32]byte(crypto.Keccak256Hash([]byte(typeString)))
}

// StructHash encodes typeHash followed by each field's 32-byte slot and
// returns its Keccak-256 (spec §4.L: "Struct hash is Keccak of type-hash
// concatenated with encoded fields").
func StructHash(typeHash [32]byte, fields ...Field) ([32]byte, error) {
	encoded := make([]byte, 0, 32*(len(fields)+1))
	encoded = append(encoded, typeHash[:]...)
	for _, f := range fields {
		slot, err := encodeField(f)
		if err != nil {
			return [32]byte{}, err
		}
		encoded = append(encoded, slot...)
	}
	return [32]byte(crypto.Keccak256Hash(encoded)), nil
}

// Domain is an EIP-712 domain separator's source fields. Only the
// populated fields are included, matching the optional-field rule of the
// EIP-712 domain type.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// DomainSeparator computes the domain separator hash for d, building its
// type string from whichever fields are non-zero.
func DomainSeparator(d Domain) [32]byte {
	var typeParts []string
	var fields []Field

	if d.Name != "" {
		typeParts = append(typeParts, "string name")
		fields = append(fields, Field{Kind: KindDynamic, Bytes: []byte(d.Name)})
	}
	if d.Version != "" {
		typeParts = append(typeParts, "string version")
		fields = append(fields, Field{Kind: KindDynamic, Bytes: []byte(d.Version)})
	}
	if d.ChainID != nil {
		typeParts = append(typeParts, "uint256 chainId")
		fields = append(fields, Field{Kind: KindUint, Int: d.ChainID})
	}
	if d.VerifyingContract != (common.Address{}) {
		typeParts = append(typeParts, "address verifyingContract")
		fields = append(fields, Field{Kind: KindAddress, Addr: d.VerifyingContract})
	}

	typeHash := TypeHash("EIP712Domain(" + strings.Join(typeParts, ",") + ")")
	hash, err := StructHash(typeHash, fields...)
	if err != nil {
		// encodeField never errors on the domain's own field kinds.
		panic(fmt.Sprintf("eip712: domain encoding: %v", err))
	}
	return hash
}

// TypedDataDigest computes the final EIP-712 signing digest
// keccak256(0x1901 || domainSeparator || structHash) (spec §4.L).
func TypedDataDigest(domainSeparator, structHash [32]byte) [32]byte {
	payload := make([]byte, 0, 2+32+32)
	payload = append(payload, 0x19, 0x01)
	payload = append(payload, domainSeparator[:]...)
	payload = append(payload, structHash[:]...)
	return [32]byte(crypto.Keccak256Hash(payload))
}

// PersonalMessageDigest computes the EIP-191 digest of raw message bytes:
// keccak256("\x19Ethereum Signed Message:\n" || decimal_length || message)
// (spec §4.L).
func PersonalMessageDigest(message []byte) [32]byte {
	prefix := "\x19Ethereum Signed Message:\n" + strconv.Itoa(len(message))
	return [32]byte(crypto.Keccak256Hash([]byte(prefix), message))
}

func encodeField(f Field) ([]byte, error) {
	slot := make([]byte, 32)
	switch f.Kind {
	case KindBytes32:
		if len(f.Bytes) > 32 {
			return nil, fmt.Errorf("eip712: bytes32 field exceeds 32 bytes")
		}
		copy(slot, f.Bytes)
	case KindAddress:
		copy(slot[12:], f.Addr.Bytes())
	case KindUint:
		n := f.Int
		if n == nil {
			n = big.NewInt(0)
		}
		b := n.Bytes()
		if len(b) > 32 {
			return nil, fmt.Errorf("eip712: uint field exceeds 256 bits")
		}
		copy(slot[32-len(b):], b)
	case KindInt:
		n := f.Int
		if n == nil {
			n = big.NewInt(0)
		}
		if n.Cmp(minInt256) < 0 || n.Cmp(maxInt256) > 0 {
			return nil, fmt.Errorf("eip712: int field exceeds 256 bits")
		}
		copy(slot, math.PaddedBigBytes(math.U256(new(big.Int).Set(n)), 32))
	case KindDynamic:
		h := [32]byte(crypto.Keccak256Hash(f.Bytes))
		copy(slot, h[:])
	default:
		return nil, fmt.Errorf("eip712: unknown field kind %d", f.Kind)
	}
	return slot, nil
}
