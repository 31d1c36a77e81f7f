package userop

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func sampleOp() UserOperation {
	return UserOperation{
		Sender:               common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Nonce:                big.NewInt(7),
		InitCode:             nil,
		CallData:             []byte{0xde, 0xad, 0xbe, 0xef},
		CallGasLimit:         big.NewInt(100000),
		VerificationGasLimit: big.NewInt(200000),
		PreVerificationGas:   big.NewInt(30000),
		MaxFeePerGas:         big.NewInt(1_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(1_000_000),
		PaymasterAndData:     nil,
	}
}

func TestHashDeterministicAndSensitiveToFields(t *testing.T) {
	entryPoint := common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	chainID := big.NewInt(1)

	op := sampleOp()
	h1 := Hash(op, entryPoint, chainID)
	h2 := Hash(op, entryPoint, chainID)
	require.Equal(t, h1, h2)

	op2 := sampleOp()
	op2.Nonce = big.NewInt(8)
	h3 := Hash(op2, entryPoint, chainID)
	require.NotEqual(t, h1, h3)

	h4 := Hash(op, entryPoint, big.NewInt(137))
	require.NotEqual(t, h1, h4)
}

func TestPackSignatureLayout(t *testing.T) {
	r := big.NewInt(12345)
	s := big.NewInt(67890)
	sig := PackSignature(r, s, 0)
	require.Len(t, sig, 65)
	require.Equal(t, byte(27), sig[64])

	sig1 := PackSignature(r, s, 1)
	require.Equal(t, byte(28), sig1[64])

	require.Equal(t, pad32(r.Bytes()), sig[0:32])
	require.Equal(t, pad32(s.Bytes()), sig[32:64])
}
