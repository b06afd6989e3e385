package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeBps(t *testing.T) {
	assert.Equal(t, 100, FeeBps("solana"))
	assert.Equal(t, 100, FeeBps("SOLANA"))
	assert.Equal(t, 50, FeeBps("ethereum"))
	assert.Equal(t, 50, FeeBps("base"))
	assert.Equal(t, 50, FeeBps("sui"))

	// unknown chains fall through to the default rate
	assert.Equal(t, 50, FeeBps("dogechain"))
}

func TestIsSupported(t *testing.T) {
	supported := []string{
		"solana", "ethereum", "base", "arbitrum", "optimism",
		"polygon", "bsc", "avalanche", "sui",
	}
	for _, c := range supported {
		assert.True(t, IsSupported(c), "chain %s should be supported", c)
	}

	assert.True(t, IsSupported("Solana"), "matching is case-insensitive")
	assert.True(t, IsSupported(" base "), "matching trims whitespace")

	assert.False(t, IsSupported("tron"))
	assert.False(t, IsSupported(""))
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		chain  string
		family Family
	}{
		{"solana", FamilySolana},
		{"ethereum", FamilyEVM},
		{"base", FamilyEVM},
		{"arbitrum", FamilyEVM},
		{"optimism", FamilyEVM},
		{"polygon", FamilyEVM},
		{"bsc", FamilyEVM},
		{"avalanche", FamilyEVM},
		{"sui", FamilySui},
	}
	for _, tt := range tests {
		f, ok := FamilyOf(tt.chain)
		assert.True(t, ok, "chain %s", tt.chain)
		assert.Equal(t, tt.family, f, "chain %s", tt.chain)
	}

	_, ok := FamilyOf("near")
	assert.False(t, ok)
}

func TestReferrersFor(t *testing.T) {
	r := Referrers{Solana: "sol-addr", EVM: "evm-addr", Sui: "sui-addr"}

	assert.Equal(t, "sol-addr", r.For("solana"))
	assert.Equal(t, "evm-addr", r.For("ethereum"))
	assert.Equal(t, "evm-addr", r.For("base"))
	assert.Equal(t, "sui-addr", r.For("sui"))

	// sui falls back to solana when no sui address is configured
	r.Sui = ""
	assert.Equal(t, "sol-addr", r.For("sui"))
}
