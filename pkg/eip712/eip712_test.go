package eip712

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestDomainSeparatorDeterministic(t *testing.T) {
	d := Domain{
		Name:              "Nero Wallet",
		Version:           "1",
		ChainID:           big.NewInt(137),
		VerifyingContract: common.HexToAddress("0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"),
	}
	a := DomainSeparator(d)
	b := DomainSeparator(d)
	require.Equal(t, a, b)

	d.ChainID = big.NewInt(1)
	c := DomainSeparator(d)
	require.NotEqual(t, a, c)
}

func TestTypedDataDigestMatchesManualConcat(t *testing.T) {
	domainSep := [32]byte{1}
	structHash := [32]byte{2}
	got := TypedDataDigest(domainSep, structHash)

	payload := append([]byte{0x19, 0x01}, append(domainSep[:], structHash[:]...)...)
	want := [32]byte(crypto.Keccak256Hash(payload))
	require.Equal(t, want, got)
}

func TestPersonalMessageDigestPrefixesLength(t *testing.T) {
	msg := []byte("hello nero")
	digest := PersonalMessageDigest(msg)
	require.NotEqual(t, [32]byte{}, digest)

	other := PersonalMessageDigest([]byte("hello nerX"))
	require.NotEqual(t, digest, other)
}

func TestStructHashRejectsOversizedBytes32(t *testing.T) {
	typeHash := TypeHash("Mail(bytes32 payload)")
	_, err := StructHash(typeHash, Field{Kind: KindBytes32, Bytes: make([]byte, 33)})
	require.Error(t, err)
}

func TestEncodeFieldAddressAndUint(t *testing.T) {
	typeHash := TypeHash("Order(address maker,uint256 amount)")
	h1, err := StructHash(typeHash,
		Field{Kind: KindAddress, Addr: common.HexToAddress("0x1111111111111111111111111111111111111111")},
		Field{Kind: KindUint, Int: big.NewInt(42)},
	)
	require.NoError(t, err)

	h2, err := StructHash(typeHash,
		Field{Kind: KindAddress, Addr: common.HexToAddress("0x1111111111111111111111111111111111111111")},
		Field{Kind: KindUint, Int: big.NewInt(43)},
	)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

// Property 12: a negative intK field encodes as 256-bit two's complement
// (0xff...ff for -1), not a zero-padded magnitude.
func TestEncodeFieldIntTwosComplement(t *testing.T) {
	typeHash := TypeHash("Order(int256 amount)")

	slotNeg, err := encodeField(Field{Kind: KindInt, Int: big.NewInt(-1)})
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xff}, 32), slotNeg)

	h, err := StructHash(typeHash, Field{Kind: KindInt, Int: big.NewInt(-1)})
	require.NoError(t, err)
	want := [32]byte(crypto.Keccak256Hash(append(append([]byte{}, typeHash[:]...), bytes.Repeat([]byte{0xff}, 32)...)))
	require.Equal(t, want, h)

	slotPos, err := encodeField(Field{Kind: KindInt, Int: big.NewInt(1)})
	require.NoError(t, err)
	want32 := make([]byte, 32)
	want32[31] = 1
	require.Equal(t, want32, slotPos)

	_, err = StructHash(typeHash, Field{Kind: KindInt, Int: new(big.Int).Lsh(big.NewInt(1), 255)})
	require.Error(t, err)
}

// Scenario E1: the canonical EIP-712 "Mail" example from the specification,
// checked against its published domain separator, struct hash, and signing
// digest.
func TestEIP712MailCanonicalVector(t *testing.T) {
	domain := Domain{
		Name:              "Ether Mail",
		Version:           "1",
		ChainID:           big.NewInt(1),
		VerifyingContract: common.HexToAddress("0xCcCCccccCCCCcCCCCCCcCcCCCcCCCCCcCcCCcCCC"),
	}
	domainSep := DomainSeparator(domain)
	require.Equal(t, [32]byte(common.HexToHash("0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f")), domainSep)

	personTypeHash := TypeHash("Person(string name,address wallet)")
	fromHash, err := StructHash(personTypeHash,
		Field{Kind: KindDynamic, Bytes: []byte("Cow")},
		Field{Kind: KindAddress, Addr: common.HexToAddress("0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826")},
	)
	require.NoError(t, err)
	toHash, err := StructHash(personTypeHash,
		Field{Kind: KindDynamic, Bytes: []byte("Bob")},
		Field{Kind: KindAddress, Addr: common.HexToAddress("0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB")},
	)
	require.NoError(t, err)

	mailTypeHash := TypeHash("Mail(Person from,Person to,string contents)Person(string name,address wallet)")
	structHash, err := StructHash(mailTypeHash,
		Field{Kind: KindBytes32, Bytes: fromHash[:]},
		Field{Kind: KindBytes32, Bytes: toHash[:]},
		Field{Kind: KindDynamic, Bytes: []byte("Hello, Bob!")},
	)
	require.NoError(t, err)
	require.Equal(t, [32]byte(common.HexToHash("0xc52c0ee5d84264471806290a3f2c4cecfc5490626bf912d01f240d7a274b371e")), structHash)

	digest := TypedDataDigest(domainSep, structHash)
	require.Equal(t, [32]byte(common.HexToHash("0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd")), digest)
}
