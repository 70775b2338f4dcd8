// Package payment resolves the ERC-20 terms of a mint priced in a token.
package payment

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/logger"
	"github.com/vitwit/mintprice/types"
)

var maxDecimals = big.NewInt(255)

// Resolver reads token metadata and an owner's allowance and balance.
type Resolver struct {
	reader clients.Reader
	logger logger.Logger
}

func NewResolver(reader clients.Reader, log logger.Logger) *Resolver {
	return &Resolver{
		reader: reader,
		logger: logger.OrNoop(log),
	}
}

// ResolveERC20 reads symbol and decimals of token and, when owner is given,
// owner's allowance towards spender and balance. All reads run together.
//
// Allowance and balance failures resolve to zero. Without an owner both stay
// nil. A decimals value outside 0..255 fails with ErrInvalidDecimals; any
// other symbol or decimals failure is returned as is.
func (r *Resolver) ResolveERC20(
	ctx context.Context,
	token common.Address,
	owner *common.Address,
	spender common.Address,
) (*types.Erc20Details, error) {
	var (
		symbol    string
		decimals  *big.Int
		allowance *big.Int
		balance   *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		values, err := r.read(gctx, token, "symbol")
		if err != nil {
			return err
		}
		symbol, err = contracts.DecodeString("symbol", values)
		return err
	})

	g.Go(func() error {
		values, err := r.read(gctx, token, "decimals")
		if err != nil {
			return err
		}
		decimals, err = contracts.DecodeUint("decimals", values)
		return err
	})

	if owner != nil {
		g.Go(func() error {
			allowance = r.readOrZero(gctx, token, "allowance", *owner, spender)
			return nil
		})
		g.Go(func() error {
			balance = r.readOrZero(gctx, token, "balanceOf", *owner)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if decimals.Sign() < 0 || decimals.Cmp(maxDecimals) > 0 {
		r.logger.Error("invalid erc20 decimals", map[string]any{
			"token":    token.Hex(),
			"decimals": decimals.String(),
		})
		return nil, &types.MintError{
			Code:    types.ErrInvalidDecimals,
			Message: fmt.Sprintf("invalid ERC20 decimals for %s: %s", token.Hex(), decimals),
		}
	}

	return &types.Erc20Details{
		Address:   token,
		Symbol:    symbol,
		Decimals:  uint8(decimals.Uint64()),
		Allowance: allowance,
		Balance:   balance,
	}, nil
}

func (r *Resolver) read(ctx context.Context, token common.Address, method string, args ...interface{}) ([]interface{}, error) {
	return r.reader.ReadContract(ctx, types.ReadCall{
		Address: token,
		ABI:     contracts.ERC20ABI,
		Method:  method,
		Args:    args,
	})
}

func (r *Resolver) readOrZero(ctx context.Context, token common.Address, method string, args ...interface{}) *big.Int {
	values, err := r.read(ctx, token, method, args...)
	if err == nil {
		var v *big.Int
		if v, err = contracts.DecodeUint(method, values); err == nil {
			return v
		}
	}
	r.logger.Debug("erc20 read defaulted to zero", map[string]any{
		"token":  token.Hex(),
		"method": method,
		"error":  err,
	})
	return new(big.Int)
}
