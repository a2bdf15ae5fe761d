// Package quadratic converts token balances into voting weight.
package quadratic

import "github.com/holiman/uint256"

// VoteCredits returns floor(sqrt(balance)). The root is taken over integers so the
// result is exact for every uint64 balance.
func VoteCredits(balance uint64) uint64 {
	return new(uint256.Int).Sqrt(uint256.NewInt(balance)).Uint64()
}
