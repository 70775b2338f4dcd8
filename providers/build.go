package providers

import (
	"fmt"
	"math/big"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/types"
)

func buildError(format string, err error, args ...any) error {
	return &types.MintError{
		Code:    types.ErrBuildFailed,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Build materializes the mint call described by cfg. It does no I/O.
func Build(cfg *Config, price *big.Int, params types.MintParams) (*types.MintCall, error) {
	if cfg == nil || cfg.Mint.ABI == nil {
		return nil, buildError("no mint spec", nil)
	}

	args, err := cfg.Mint.BuildArgs(params)
	if err != nil {
		return nil, buildError("%s: build args", err, cfg.Name)
	}

	data, err := cfg.Mint.ABI.Pack(cfg.Mint.FunctionName, args...)
	if err != nil {
		return nil, buildError("%s: encode %s", err, cfg.Name, cfg.Mint.FunctionName)
	}

	return &types.MintCall{
		To:     cfg.Mint.Target(params),
		ABI:    cfg.Mint.ABI,
		Method: cfg.Mint.FunctionName,
		Args:   args,
		Data:   data,
		Value:  cfg.Mint.CalculateValue(price, params),
	}, nil
}

// BuildMint builds the mint call for a finished discovery, reusing the terms
// it found.
func BuildMint(d *types.DiscoveryResult, params types.MintParams) (*types.MintCall, error) {
	if d == nil {
		return nil, buildError("no discovery result", nil)
	}
	cfg := ConfigFor(d.Provider.String(), d)
	return Build(cfg, d.Price.MintPrice, params)
}

// BuildApproval returns the ERC-20 approve call a mint needs first, or nil
// when the mint is paid natively or the known allowance already covers it.
func BuildApproval(d *types.DiscoveryResult, params types.MintParams) (*types.MintCall, error) {
	if d == nil {
		return nil, buildError("no discovery result", nil)
	}
	cfg := ConfigFor(d.Provider.String(), d)
	if cfg.ERC20 == nil {
		return nil, nil
	}

	amount := cfg.ERC20.Amount(params)
	if d.Price.ERC20.Covers(amount) {
		return nil, nil
	}

	spender := cfg.ERC20.Spender(params)
	args := []interface{}{spender, amount}
	data, err := contracts.ERC20ABI.Pack("approve", args...)
	if err != nil {
		return nil, buildError("%s: encode approve", err, cfg.Name)
	}

	return &types.MintCall{
		To:     cfg.ERC20.Token,
		ABI:    contracts.ERC20ABI,
		Method: "approve",
		Args:   args,
		Data:   data,
		Value:  new(big.Int),
	}, nil
}
