package providers

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/probe"
	"github.com/vitwit/mintprice/types"
)

var (
	// Assumed when a contract answers none of the known price functions:
	// 0.0001 native units each.
	nfts2meCreatorFee  = big.NewInt(100_000_000_000_000)
	nfts2meProtocolFee = big.NewInt(100_000_000_000_000)
)

var nfts2meConfig = &Config{
	Name: types.ProviderNFTs2Me,
	PriceDiscovery: PriceDiscovery{
		ABI:                 contracts.NFTs2MeABI,
		FunctionNames:       []string{"mintFee"},
		RequiresAmountParam: true,
	},
	Mint: MintSpec{
		ABI:            contracts.NFTs2MeABI,
		FunctionName:   "mint",
		Target:         contractTarget,
		BuildArgs:      quantityArgs,
		CalculateValue: priceTimesQuantity,
	},
	RequiredParams: []string{"contractAddress", "chainId"},
}

type nfts2meProvider struct{}

func (nfts2meProvider) Kind() types.ProviderKind {
	return types.ProviderNFTs2Me
}

// Config attaches the discovered total as the mint value: depending on the
// contract version the price already covers the whole quantity.
func (nfts2meProvider) Config(d *types.DiscoveryResult) *Config {
	cfg := nfts2meConfig.clone()
	if d == nil || d.Degraded || d.Price.TotalCost == nil {
		return cfg
	}
	total := new(big.Int).Set(d.Price.TotalCost)
	cfg.Mint.CalculateValue = func(*big.Int, types.MintParams) *big.Int {
		return new(big.Int).Set(total)
	}
	return cfg
}

// Discover tries, in order: a flat mintPrice(), then mintFee(amount) joined
// with protocolFee(), then the assumed default fees. Only a cancelled
// context fails it.
func (nfts2meProvider) Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	contract := params.Contract()
	quantity := params.Quantity()
	result := types.ZeroCost(types.ProviderNFTs2Me, info)

	hit, ok, err := probe.Run(ctx, env.Reader, probe.Target{
		Address: contract,
		ABI:     contracts.NFTs2MeABI,
	}, []probe.Attempt{{Method: "mintPrice"}}, env.Logger)
	if err != nil {
		return nil, err
	}
	if ok {
		price := hit.Values[0].(*big.Int)
		result.Price.MintPrice = price
		result.Price.TotalCost = new(big.Int).Mul(price, quantity)
		return result, nil
	}

	var creatorFee, protocolFee *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		values, err := env.Reader.ReadContract(gctx, types.ReadCall{
			Address: contract,
			ABI:     contracts.NFTs2MeABI,
			Method:  "mintFee",
			Args:    []interface{}{quantity},
		})
		if err != nil {
			return err
		}
		creatorFee, err = contracts.DecodeUint("mintFee", values)
		return err
	})
	g.Go(func() error {
		values, err := env.Reader.ReadContract(gctx, types.ReadCall{
			Address: contract,
			ABI:     contracts.NFTs2MeABI,
			Method:  "protocolFee",
		})
		if err != nil {
			return err
		}
		protocolFee, err = contracts.DecodeUint("protocolFee", values)
		return err
	})

	err = g.Wait()
	if err == nil {
		result.Price.MintPrice = creatorFee
		result.Price.TotalCost = new(big.Int).Add(creatorFee, new(big.Int).Mul(protocolFee, quantity))
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	env.Logger.Debug("nfts2me fee reads failed, using default fees", map[string]any{
		"contract": contract.Hex(),
		"error":    err,
	})

	result.Price.MintPrice = new(big.Int).Mul(nfts2meCreatorFee, quantity)
	result.Price.TotalCost = new(big.Int).Mul(new(big.Int).Add(nfts2meCreatorFee, nfts2meProtocolFee), quantity)
	return result, nil
}
