package providers

import (
	"context"
	"fmt"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/probe"
	"github.com/vitwit/mintprice/types"
)

var openseaConfig = &Config{
	Name: types.ProviderOpenSea,
	PriceDiscovery: PriceDiscovery{
		ABI:           contracts.PriceDiscoveryABI,
		FunctionNames: []string{"mintPrice", "price", "publicMintPrice"},
	},
	Mint: MintSpec{
		ABI:            contracts.MintABI,
		FunctionName:   "mint",
		Target:         contractTarget,
		BuildArgs:      quantityArgs,
		CalculateValue: priceTimesQuantity,
	},
	RequiredParams: []string{"contractAddress", "chainId"},
}

var zoraConfig = &Config{
	Name: types.ProviderZora,
	PriceDiscovery: PriceDiscovery{
		ABI:           contracts.PriceDiscoveryABI,
		FunctionNames: []string{"mintPrice", "price"},
	},
	Mint: MintSpec{
		ABI:          contracts.MintToABI,
		FunctionName: "mint",
		Target:       contractTarget,
		BuildArgs: func(params types.MintParams) ([]interface{}, error) {
			recipient, ok := params.RecipientAddress()
			if !ok {
				return nil, fmt.Errorf("zora mint needs a recipient")
			}
			return []interface{}{recipient, params.Quantity()}, nil
		},
		CalculateValue: priceTimesQuantity,
	},
	RequiredParams: []string{"contractAddress", "chainId"},
}

var genericConfig = &Config{
	Name: types.ProviderGeneric,
	PriceDiscovery: PriceDiscovery{
		ABI:           contracts.PriceDiscoveryABI,
		FunctionNames: []string{"mintPrice", "price", "MINT_PRICE", "getMintPrice"},
	},
	Mint: MintSpec{
		ABI:            contracts.MintABI,
		FunctionName:   "mint",
		Target:         contractTarget,
		BuildArgs:      quantityArgs,
		CalculateValue: priceTimesQuantity,
	},
	RequiredParams: []string{"contractAddress", "chainId"},
}

// probeProvider covers contracts that expose a plain price getter.
type probeProvider struct {
	base *Config
}

func (p probeProvider) Kind() types.ProviderKind {
	return p.base.Name
}

func (p probeProvider) Config(*types.DiscoveryResult) *Config {
	return p.base.clone()
}

func (p probeProvider) Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	return discoverByProbe(ctx, env, p.base, params, info)
}

// discoverByProbe tries each configured price function in order. A contract
// with none of them is a free mint.
func discoverByProbe(ctx context.Context, env Env, cfg *Config, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	var args []interface{}
	if cfg.PriceDiscovery.RequiresAmountParam {
		args = append(args, params.Quantity())
	}

	hit, ok, err := probe.Run(ctx, env.Reader, probe.Target{
		Address: params.Contract(),
		ABI:     cfg.PriceDiscovery.ABI,
	}, probe.Named(cfg.PriceDiscovery.FunctionNames, args...), env.Logger)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.ZeroCost(cfg.Name, info), nil
	}

	price, err := contracts.DecodeUint(hit.Method, hit.Values)
	if err != nil {
		return nil, err
	}

	result := types.ZeroCost(cfg.Name, info)
	result.Price.MintPrice = price
	result.Price.TotalCost = cfg.Mint.CalculateValue(price, params)
	return result, nil
}
