package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/vitwit/mintprice/types"
)

var hexWord = regexp.MustCompile("^[0-9a-fA-F]{64}$")

// ValidateAddress checks that address is a 0x-prefixed 20-byte hex address.
func ValidateAddress(address string) (common.Address, error) {
	if address == "" {
		return common.Address{}, fmt.Errorf("address cannot be empty")
	}
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return common.Address{}, fmt.Errorf("address must start with 0x")
	}
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address: %s", address)
	}
	return common.HexToAddress(address), nil
}

// ValidateAmount checks if an amount string is a valid non-negative decimal
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}

// ValidateMerkleProof checks that every word is 32 bytes of hex, with or
// without a 0x prefix.
func ValidateMerkleProof(proof []string) error {
	for i, word := range proof {
		word = strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
		if !hexWord.MatchString(word) {
			return fmt.Errorf("merkleProof[%d] must be 32 bytes of hex", i)
		}
	}
	return nil
}

// ValidateChain reports whether chainID is one of the chains with known
// metadata. Unknown chains are still usable; this only flags typos.
func ValidateChain(chainID int64) error {
	if chainID <= 0 {
		return fmt.Errorf("chain id must be positive")
	}
	if !types.LookupChain(chainID).Known() {
		return fmt.Errorf("unknown chain id: %d", chainID)
	}
	return nil
}
