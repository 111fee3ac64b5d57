package abi

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
  {
    "type": "constructor",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "decimals", "type": "uint8"},
      {"name": "supply", "type": "uint256"},
      {"name": "owner", "type": "address"},
      {"name": "mintable", "type": "bool"},
      {"name": "salt", "type": "bytes32"},
      {"name": "holders", "type": "address[]"},
      {"name": "offset", "type": "int64"}
    ]
  }
]`

func TestEncoder_ConstructorArgs(t *testing.T) {
	e := NewEncoder()
	parsed, err := e.ParseABI(json.RawMessage(tokenABI))
	require.NoError(t, err)

	owner := "0x00000000000000000000000000000000000000aa"
	values, err := e.ConstructorArgs(parsed, []string{
		"Smithy",
		"18",
		"0x3635c9adc5dea00000",
		owner,
		"true",
		"0x01",
		`["0x00000000000000000000000000000000000000bb"]`,
		"-5",
	})
	require.NoError(t, err)
	require.Len(t, values, 8)

	assert.Equal(t, "Smithy", values[0])
	assert.Equal(t, uint8(18), values[1])
	assert.Equal(t, 0, values[2].(*big.Int).Cmp(new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))))
	assert.Equal(t, common.HexToAddress(owner), values[3])
	assert.Equal(t, true, values[4])
	assert.Equal(t, byte(0x01), values[5].([32]byte)[0])
	assert.Equal(t, []common.Address{common.HexToAddress("0xbb")}, values[6])
	assert.Equal(t, int64(-5), values[7])

	packed, err := e.Encode(parsed, []string{"Smithy", "18", "1000", owner, "false", "0x", "[]", "0"})
	require.NoError(t, err)
	assert.Zero(t, len(packed)%32)
	assert.Equal(t, "(string name, uint8 decimals, uint256 supply, address owner, bool mintable, bytes32 salt, address[] holders, int64 offset)",
		e.ConstructorSignature(parsed))
}

func TestEncoder_Errors(t *testing.T) {
	e := NewEncoder()

	tests := []struct {
		name    string
		abiType string
		arg     string
		wantErr string
	}{
		{"uint overflow", "uint8", "256", "out of range for uint8"},
		{"negative uint", "uint256", "-1", "out of range"},
		{"int underflow", "int8", "-129", "out of range for int8"},
		{"bad integer", "uint256", "lots", "invalid integer"},
		{"bad address", "address", "0x1234", "invalid address"},
		{"bad bool", "bool", "yes please", "invalid syntax"},
		{"bytes without prefix", "bytes", "abcd", "invalid hex value"},
		{"fixed bytes too long", "bytes2", "0x010203", "max 2"},
		{"array length", "uint8[2]", "[1]", "expected 2 elements"},
		{"not an array", "uint8[]", "1,2", "expected a JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `[{"type":"constructor","inputs":[{"name":"v","type":"` + tt.abiType + `"}]}]`
			parsed, err := e.ParseABI(json.RawMessage(raw))
			require.NoError(t, err)

			_, err = e.ConstructorArgs(parsed, []string{tt.arg})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("argument count", func(t *testing.T) {
		parsed, err := e.ParseABI(json.RawMessage(tokenABI))
		require.NoError(t, err)

		_, err = e.ConstructorArgs(parsed, []string{"only one"})
		assert.ErrorContains(t, err, "constructor expects 8 argument(s)")
	})

	t.Run("no constructor takes no args", func(t *testing.T) {
		parsed, err := e.ParseABI(nil)
		require.NoError(t, err)

		values, err := e.ConstructorArgs(parsed, nil)
		require.NoError(t, err)
		assert.Empty(t, values)
	})
}
