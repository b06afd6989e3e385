package chains

import "strings"

// Family groups chains by their signing/address scheme. Referrer addresses
// are configured per family, not per chain.
type Family string

const (
	FamilySolana Family = "solana"
	FamilyEVM    Family = "evm"
	FamilySui    Family = "sui"
)

// Referral fee schedule in basis points, keyed by source chain.
// Solana-originated swaps carry a higher fee than EVM ones; keep this
// table-driven so the schedule can change without touching call sites.
const (
	solanaFeeBps  = 100
	defaultFeeBps = 50
)

var feeBpsByChain = map[string]int{
	"solana": solanaFeeBps,
}

// supported chains, lowercase canonical form
var families = map[string]Family{
	"solana":    FamilySolana,
	"ethereum":  FamilyEVM,
	"base":      FamilyEVM,
	"arbitrum":  FamilyEVM,
	"optimism":  FamilyEVM,
	"polygon":   FamilyEVM,
	"bsc":       FamilyEVM,
	"avalanche": FamilyEVM,
	"sui":       FamilySui,
}

// Normalize lowercases a chain name for table lookups and provider calls.
func Normalize(chain string) string {
	return strings.ToLower(strings.TrimSpace(chain))
}

// IsSupported reports whether chain is in the supported set. Matching is
// case-insensitive.
func IsSupported(chain string) bool {
	_, ok := families[Normalize(chain)]
	return ok
}

// FamilyOf returns the chain family for a supported chain.
func FamilyOf(chain string) (Family, bool) {
	f, ok := families[Normalize(chain)]
	return f, ok
}

// FeeBps returns the referral fee in basis points for swaps originating on
// fromChain.
func FeeBps(fromChain string) int {
	if bps, ok := feeBpsByChain[Normalize(fromChain)]; ok {
		return bps
	}
	return defaultFeeBps
}

// Referrers holds the operator referral addresses per chain family.
type Referrers struct {
	Solana string
	EVM    string
	Sui    string
}

// For returns the referral address used for swaps originating on fromChain.
// The sui address falls back to the solana one when unset.
func (r Referrers) For(fromChain string) string {
	switch f, _ := FamilyOf(fromChain); f {
	case FamilyEVM:
		return r.EVM
	case FamilySui:
		if r.Sui != "" {
			return r.Sui
		}
		return r.Solana
	default:
		return r.Solana
	}
}
