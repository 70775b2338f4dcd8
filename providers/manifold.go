package providers

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/types"
)

var manifoldConfig = &Config{
	Name: types.ProviderManifold,
	PriceDiscovery: PriceDiscovery{
		ABI:                contracts.ManifoldExtensionABI,
		FunctionNames:      []string{"MINT_FEE"},
		RequiresInstanceID: true,
	},
	Mint: MintSpec{
		ABI:          contracts.ManifoldExtensionABI,
		FunctionName: "mint",
		Target:       contractTarget,
		BuildArgs:    manifoldArgs,
		// The extension fee; claim cost is added once a claim is known.
		CalculateValue: func(fee *big.Int, _ types.MintParams) *big.Int {
			if fee == nil {
				return new(big.Int)
			}
			return new(big.Int).Set(fee)
		},
	},
	RequiredParams: []string{"contractAddress", "chainId"},
	SupportsERC20:  true,
}

func manifoldArgs(params types.MintParams) ([]interface{}, error) {
	recipient, ok := params.RecipientAddress()
	if !ok {
		return nil, fmt.Errorf("manifold mint needs a recipient")
	}
	instance, ok := params.Instance()
	if !ok {
		instance = new(big.Int)
	}
	index, err := params.MintIndex()
	if err != nil {
		return nil, err
	}
	proof, err := params.Proof()
	if err != nil {
		return nil, err
	}
	return []interface{}{params.Contract(), instance, index, proof, recipient}, nil
}

type manifoldProvider struct{}

func (manifoldProvider) Kind() types.ProviderKind {
	return types.ProviderManifold
}

func (manifoldProvider) Config(d *types.DiscoveryResult) *Config {
	cfg := manifoldConfig.clone()
	if d == nil {
		return cfg
	}

	if ext, ok := d.Contract.Extension(); ok {
		cfg.Mint.Target = func(types.MintParams) common.Address { return ext }
	}

	claim := d.Claim
	if claim == nil {
		return cfg
	}

	cfg.Mint.CalculateValue = func(fee *big.Int, _ types.MintParams) *big.Int {
		value := new(big.Int)
		if fee != nil {
			value.Set(fee)
		}
		if !claim.PaysInERC20() {
			value.Add(value, claim.Cost)
		}
		return value
	}

	if claim.PaysInERC20() {
		ext, _ := d.Contract.Extension()
		cfg.ERC20 = &ERC20Payment{
			Token:   claim.ERC20,
			Spender: func(types.MintParams) common.Address { return ext },
			Amount: func(types.MintParams) *big.Int {
				return new(big.Int).Set(claim.Cost)
			},
		}
	}
	return cfg
}

// Discover reads MINT_FEE and, with an instance id, the claim from the
// extension. A failed read leaves its value unknown instead of failing the
// branch, unless the bytes came back and did not decode. Without an extension
// the fee is probed on the contract itself.
func (manifoldProvider) Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	ext, ok := info.Extension()
	if !ok {
		return discoverByProbe(ctx, env, manifoldConfig, params, info)
	}

	var (
		fee   *big.Int
		claim *types.Claim
		g     errgroup.Group
	)

	g.Go(func() error {
		values, err := env.Reader.ReadContract(ctx, types.ReadCall{
			Address: ext,
			ABI:     contracts.ManifoldExtensionABI,
			Method:  "MINT_FEE",
		})
		if err != nil {
			if err := readFailure("MINT_FEE", err); types.IsMalformed(err) {
				return err
			}
			env.Logger.Debug("manifold MINT_FEE read failed", map[string]any{
				"extension": ext.Hex(),
				"error":     err,
			})
			return nil
		}
		fee, err = contracts.DecodeUint("MINT_FEE", values)
		return err
	})

	if instance, ok := params.Instance(); ok {
		g.Go(func() error {
			values, err := env.Reader.ReadContract(ctx, types.ReadCall{
				Address: ext,
				ABI:     contracts.ManifoldExtensionABI,
				Method:  "getClaim",
				Args:    []interface{}{params.Contract(), instance},
			})
			if err != nil {
				if err := readFailure("getClaim", err); types.IsMalformed(err) {
					return err
				}
				env.Logger.Debug("manifold getClaim read failed", map[string]any{
					"extension": ext.Hex(),
					"instance":  instance.String(),
					"error":     err,
				})
				return nil
			}
			claim, err = contracts.DecodeClaim(values)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if fee == nil {
		fee = new(big.Int)
	}

	result := types.ZeroCost(types.ProviderManifold, info)
	result.Claim = claim
	result.Price.MintPrice = fee
	result.Price.TotalCost = new(big.Int).Set(fee)

	switch {
	case claim == nil:
	case claim.PaysInERC20():
		details, err := env.Payments.ResolveERC20(ctx, claim.ERC20, ownerOf(params), ext)
		if err != nil {
			return nil, err
		}
		result.Price.ERC20 = details
	default:
		result.Price.TotalCost.Add(result.Price.TotalCost, claim.Cost)
	}

	return result, nil
}
