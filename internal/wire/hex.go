package wire

import "encoding/hex"

func hexEncodeBytes(b []byte) string { return hex.EncodeToString(b) }

func hexDecodeBytes(s string) ([]byte, error) { return hex.DecodeString(s) }
