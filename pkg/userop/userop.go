// Package userop implements the ERC-4337 packed UserOperation hash and the
// 65-byte signature packer callers need immediately after a signing
// session returns (spec §4.L). Grounded on the same packed-ABI-encode-
// then-Keccak idiom as pkg/eip712, using go-ethereum for Keccak-256 and
// address/big.Int encoding.
package userop

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// UserOperation carries the subset of ERC-4337's UserOperation fields the
// packed hash is computed over.
type UserOperation struct {
	Sender               common.Address
	Nonce                *big.Int
	InitCode             []byte
	CallData             []byte
	CallGasLimit         *big.Int
	VerificationGasLimit *big.Int
	PreVerificationGas   *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	PaymasterAndData     []byte
}

// Hash computes the ERC-4337 UserOp hash: Keccak-256 of the packed op
// fields, hashed again with the entry point and chain ID appended
// (spec §4.L).
func Hash(op UserOperation, entryPoint common.Address, chainID *big.Int) [32]byte {
	packed := make([]byte, 0, 32*10)
	packed = append(packed, pad32(op.Sender.Bytes())...)
	packed = append(packed, padUint256(op.Nonce)...)
	packed = append(packed, crypto.Keccak256(op.InitCode)...)
	packed = append(packed, crypto.Keccak256(op.CallData)...)
	packed = append(packed, padUint256(op.CallGasLimit)...)
	packed = append(packed, padUint256(op.VerificationGasLimit)...)
	packed = append(packed, padUint256(op.PreVerificationGas)...)
	packed = append(packed, padUint256(op.MaxFeePerGas)...)
	packed = append(packed, padUint256(op.MaxPriorityFeePerGas)...)
	packed = append(packed, crypto.Keccak256(op.PaymasterAndData)...)

	opHash := crypto.Keccak256(packed)

	final := make([]byte, 0, 32*3)
	final = append(final, opHash...)
	final = append(final, pad32(entryPoint.Bytes())...)
	final = append(final, padUint256(chainID)...)

	return [32]byte(crypto.Keccak256(final))
}

// PackSignature assembles the 65-byte UserOperation.signature field from
// a threshold-produced (r, s, v): 32-byte r, 32-byte s, and a single v
// byte normalized to Ethereum's 27/28 convention (spec's supplemented
// UserOp signature helper — every ERC-4337 caller needs this immediately
// after a signing session returns).
func PackSignature(r, s *big.Int, v int) []byte {
	sig := make([]byte, 65)
	copy(sig[0:32], pad32(r.Bytes()))
	copy(sig[32:64], pad32(s.Bytes()))
	sig[64] = byte(v) + 27
	return sig
}

func padUint256(n *big.Int) []byte {
	if n == nil {
		n = big.NewInt(0)
	}
	return pad32(n.Bytes())
}

func pad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return padded
}
