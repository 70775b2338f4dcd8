// Package providers knows the mint protocols: how each one exposes its price,
// how to discover it, and how to build the call that mints.
package providers

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/logger"
	"github.com/vitwit/mintprice/payment"
	"github.com/vitwit/mintprice/types"
)

// Env bundles the collaborators a discovery strategy uses.
type Env struct {
	Reader   clients.Reader
	Payments *payment.Resolver
	Logger   logger.Logger
}

// NewEnv wires a payment resolver on top of reader.
func NewEnv(reader clients.Reader, log logger.Logger) Env {
	log = logger.OrNoop(log)
	return Env{
		Reader:   reader,
		Payments: payment.NewResolver(reader, log),
		Logger:   log,
	}
}

func (e Env) withDefaults() Env {
	e.Logger = logger.OrNoop(e.Logger)
	if e.Payments == nil {
		e.Payments = payment.NewResolver(e.Reader, e.Logger)
	}
	return e
}

// PriceDiscovery describes the read functions that reveal a price.
type PriceDiscovery struct {
	ABI                 *abi.ABI
	FunctionNames       []string
	RequiresInstanceID  bool
	RequiresAmountParam bool
}

// MintSpec describes the call that mints.
type MintSpec struct {
	ABI          *abi.ABI
	FunctionName string

	// Target returns the contract the call is sent to.
	Target func(params types.MintParams) common.Address

	BuildArgs func(params types.MintParams) ([]interface{}, error)

	// CalculateValue returns the native value to attach given the
	// discovered price.
	CalculateValue func(price *big.Int, params types.MintParams) *big.Int
}

// ERC20Payment is set on configs specialized on an ERC-20 priced discovery.
type ERC20Payment struct {
	Token   common.Address
	Spender func(params types.MintParams) common.Address
	Amount  func(params types.MintParams) *big.Int
}

// Config is the static description of a provider. Configs returned by
// Provider.Config are copies; callers may not share them across discoveries.
type Config struct {
	Name           types.ProviderKind
	PriceDiscovery PriceDiscovery
	Mint           MintSpec
	RequiredParams []string
	SupportsERC20  bool

	// ERC20 is only set once discovery found an ERC-20 price.
	ERC20 *ERC20Payment
}

func (c *Config) clone() *Config {
	cp := *c
	return &cp
}

// Provider is one mint protocol family.
type Provider interface {
	Kind() types.ProviderKind

	// Config returns the provider configuration. When d carries discovered
	// terms the mint spec is specialized on them. d may be nil.
	Config(d *types.DiscoveryResult) *Config

	// Discover reads the current price. Errors returned here are either
	// malformed responses or whole-branch failures; Discover in this
	// package tells them apart.
	Discover(ctx context.Context, env Env, params types.MintParams, info types.ContractInfo) (*types.DiscoveryResult, error)
}

func recipientOr(params types.MintParams, fallback common.Address) common.Address {
	if addr, ok := params.RecipientAddress(); ok {
		return addr
	}
	return fallback
}

func ownerOf(params types.MintParams) *common.Address {
	if addr, ok := params.RecipientAddress(); ok {
		return &addr
	}
	return nil
}

func contractTarget(params types.MintParams) common.Address {
	return params.Contract()
}

func priceTimesQuantity(price *big.Int, params types.MintParams) *big.Int {
	if price == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(price, params.Quantity())
}

func quantityArgs(params types.MintParams) ([]interface{}, error) {
	return []interface{}{params.Quantity()}, nil
}

// readFailure marks a read whose bytes came back but did not decode as a
// malformed response. Absence and reverts pass through unchanged.
func readFailure(method string, err error) error {
	if err == nil || !errors.Is(err, clients.ErrDecodeResult) {
		return err
	}
	return &types.MintError{
		Code:    types.ErrMalformedResponse,
		Message: fmt.Sprintf("malformed %s response", method),
		Err:     err,
	}
}
