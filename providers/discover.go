package providers

import (
	"context"
	"math/big"

	"github.com/vitwit/mintprice/types"
)

// Discover runs the provider named by info against params.
//
// Malformed contract responses and out-of-range token decimals are returned
// as errors. Any other failure is logged and replaced by a degraded zero-cost
// result whose MintPrice is unknown, so callers always get something to show.
func Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	env = env.withDefaults()
	p := Lookup(info.Provider)

	result, err := p.Discover(ctx, env, params, info)
	if err == nil {
		return result, nil
	}
	if types.IsMalformed(err) {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	env.Logger.Warn("price discovery failed, assuming free mint", map[string]any{
		"provider": p.Kind().String(),
		"contract": params.Contract().Hex(),
		"chainId":  params.ChainID,
		"error":    err,
	})

	return &types.DiscoveryResult{
		Provider: p.Kind(),
		Contract: info,
		Price: types.PriceResult{
			TotalCost: new(big.Int),
		},
		Degraded: true,
	}, nil
}
