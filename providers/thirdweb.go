package providers

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/types"
)

var thirdwebConfig = &Config{
	Name: types.ProviderThirdweb,
	PriceDiscovery: PriceDiscovery{
		ABI:           contracts.ThirdwebDropABI,
		FunctionNames: []string{"claimCondition", "getClaimConditionById"},
	},
	Mint: MintSpec{
		ABI:          contracts.ThirdwebDropABI,
		FunctionName: "claim",
		Target:       contractTarget,
		BuildArgs: func(params types.MintParams) ([]interface{}, error) {
			return thirdwebArgs(params, contracts.NativeToken, new(big.Int))
		},
		CalculateValue: priceTimesQuantity,
	},
	RequiredParams: []string{"contractAddress", "chainId"},
	SupportsERC20:  true,
}

// thirdwebArgs builds claim(receiver, quantity, currency, pricePerToken,
// allowlistProof, data). The allowlist proof lifts every per-wallet limit so
// the public condition applies.
func thirdwebArgs(params types.MintParams, currency common.Address, pricePerToken *big.Int) ([]interface{}, error) {
	proof, err := params.Proof()
	if err != nil {
		return nil, err
	}
	return []interface{}{
		recipientOr(params, params.Contract()),
		params.Quantity(),
		currency,
		new(big.Int).Set(pricePerToken),
		contracts.AllowlistProof{
			Proof:                  proof,
			QuantityLimitPerWallet: new(big.Int).Set(math.MaxBig256),
			PricePerToken:          new(big.Int).Set(math.MaxBig256),
			Currency:               contracts.ZeroAddress,
		},
		[]byte{},
	}, nil
}

func isNative(currency common.Address) bool {
	return currency == contracts.NativeToken
}

type thirdwebProvider struct{}

func (thirdwebProvider) Kind() types.ProviderKind {
	return types.ProviderThirdweb
}

// Config closes the mint spec over the discovered condition's currency and
// price. ERC-20 conditions attach no native value and expose the approval
// the claim needs.
func (thirdwebProvider) Config(d *types.DiscoveryResult) *Config {
	cfg := thirdwebConfig.clone()
	if d == nil || d.ClaimCondition == nil {
		return cfg
	}

	cond := d.ClaimCondition
	price := cond.PricePerToken
	if price == nil {
		price = new(big.Int)
	}
	currency := cond.Currency

	cfg.Mint.BuildArgs = func(params types.MintParams) ([]interface{}, error) {
		return thirdwebArgs(params, currency, price)
	}

	if isNative(currency) {
		cfg.Mint.CalculateValue = priceTimesQuantity
		return cfg
	}

	cfg.Mint.CalculateValue = func(*big.Int, types.MintParams) *big.Int {
		return new(big.Int)
	}
	cfg.ERC20 = &ERC20Payment{
		Token:   currency,
		Spender: contractTarget,
		Amount: func(params types.MintParams) *big.Int {
			return new(big.Int).Mul(price, params.Quantity())
		},
	}
	return cfg
}

// Discover reads the active claim condition. The condition id depends on the
// index pair, so the two reads are sequential. Responses that do not decode
// fail discovery outright.
func (thirdwebProvider) Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error) {
	contract := params.Contract()

	values, err := env.Reader.ReadContract(ctx, types.ReadCall{
		Address: contract,
		ABI:     contracts.ThirdwebDropABI,
		Method:  "claimCondition",
	})
	if err != nil {
		return nil, readFailure("claimCondition", err)
	}
	start, count, err := contracts.DecodeIndexPair(values)
	if err != nil {
		return nil, err
	}

	result := types.ZeroCost(types.ProviderThirdweb, info)
	if count.Sign() == 0 {
		return result, nil
	}

	id := new(big.Int).Add(start, count)
	id.Sub(id, big.NewInt(1))

	values, err = env.Reader.ReadContract(ctx, types.ReadCall{
		Address: contract,
		ABI:     contracts.ThirdwebDropABI,
		Method:  "getClaimConditionById",
		Args:    []interface{}{id},
	})
	if err != nil {
		return nil, readFailure("getClaimConditionById", err)
	}
	cond, err := contracts.DecodeClaimCondition(id, values)
	if err != nil {
		return nil, err
	}

	result.ClaimCondition = cond
	result.Price.MintPrice = cond.PricePerToken

	if isNative(cond.Currency) {
		result.Price.TotalCost = new(big.Int).Mul(cond.PricePerToken, params.Quantity())
		return result, nil
	}

	details, err := env.Payments.ResolveERC20(ctx, cond.Currency, ownerOf(params), contract)
	if err != nil {
		return nil, err
	}
	result.Price.ERC20 = details
	return result, nil
}
