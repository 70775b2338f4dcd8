package contracts

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vitwit/mintprice/types"
)

// ManifoldClaim mirrors the getClaim tuple. Field order and types match the
// struct go-ethereum generates for it, so decoded values convert directly.
type ManifoldClaim struct {
	Total           uint32
	TotalMax        uint32
	WalletMax       uint32
	StartDate       *big.Int
	EndDate         *big.Int
	StorageProtocol uint8
	ContractVersion uint8
	Identical       bool
	MerkleRoot      [32]byte
	Location        string
	Cost            *big.Int
	PaymentReceiver common.Address
	Erc20           common.Address
	SigningAddress  common.Address
}

// ThirdwebClaimCondition mirrors the getClaimConditionById tuple.
type ThirdwebClaimCondition struct {
	StartTimestamp         *big.Int
	MaxClaimableSupply     *big.Int
	SupplyClaimed          *big.Int
	QuantityLimitPerWallet *big.Int
	MerkleRoot             [32]byte
	PricePerToken          *big.Int
	Currency               common.Address
	Metadata               string
}

// AllowlistProof is the _allowlistProof argument of thirdweb claim.
type AllowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

func malformed(method string, format string, args ...interface{}) error {
	return &types.MintError{
		Code:    types.ErrMalformedResponse,
		Message: fmt.Sprintf("malformed %s response", method),
		Err:     fmt.Errorf(format, args...),
	}
}

// DecodeUint extracts a single uint256 return value.
func DecodeUint(method string, values []interface{}) (*big.Int, error) {
	if len(values) != 1 {
		return nil, malformed(method, "want 1 value, got %d", len(values))
	}
	v, ok := values[0].(*big.Int)
	if !ok || v == nil {
		return nil, malformed(method, "want *big.Int, got %T", values[0])
	}
	return v, nil
}

func DecodeString(method string, values []interface{}) (string, error) {
	if len(values) != 1 {
		return "", malformed(method, "want 1 value, got %d", len(values))
	}
	s, ok := values[0].(string)
	if !ok {
		return "", malformed(method, "want string, got %T", values[0])
	}
	return s, nil
}

// DecodeIndexPair decodes thirdweb claimCondition() into (startId, count).
func DecodeIndexPair(values []interface{}) (startID, count *big.Int, err error) {
	if len(values) != 2 {
		return nil, nil, malformed("claimCondition", "want 2 values, got %d", len(values))
	}
	startID, ok := values[0].(*big.Int)
	if !ok || startID == nil {
		return nil, nil, malformed("claimCondition", "currentStartId is %T", values[0])
	}
	count, ok = values[1].(*big.Int)
	if !ok || count == nil {
		return nil, nil, malformed("claimCondition", "count is %T", values[1])
	}
	return startID, count, nil
}

// DecodeClaim converts a getClaim result.
func DecodeClaim(values []interface{}) (*types.Claim, error) {
	if len(values) != 1 {
		return nil, malformed("getClaim", "want 1 value, got %d", len(values))
	}
	t, err := convertTuple[ManifoldClaim](values[0])
	if err != nil {
		return nil, malformed("getClaim", "%v", err)
	}
	if t.Cost == nil || t.StartDate == nil || t.EndDate == nil {
		return nil, malformed("getClaim", "missing numeric fields")
	}
	return &types.Claim{
		Total:           t.Total,
		TotalMax:        t.TotalMax,
		WalletMax:       t.WalletMax,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		MerkleRoot:      common.Hash(t.MerkleRoot),
		Location:        t.Location,
		Cost:            t.Cost,
		PaymentReceiver: t.PaymentReceiver,
		ERC20:           t.Erc20,
		SigningAddress:  t.SigningAddress,
	}, nil
}

// DecodeClaimCondition converts a getClaimConditionById result for id.
func DecodeClaimCondition(id *big.Int, values []interface{}) (*types.ClaimCondition, error) {
	if len(values) != 1 {
		return nil, malformed("getClaimConditionById", "want 1 value, got %d", len(values))
	}
	t, err := convertTuple[ThirdwebClaimCondition](values[0])
	if err != nil {
		return nil, malformed("getClaimConditionById", "%v", err)
	}
	if t.PricePerToken == nil || t.StartTimestamp == nil || t.MaxClaimableSupply == nil ||
		t.SupplyClaimed == nil || t.QuantityLimitPerWallet == nil {
		return nil, malformed("getClaimConditionById", "missing numeric fields")
	}
	return &types.ClaimCondition{
		ID:                     new(big.Int).Set(id),
		StartTimestamp:         t.StartTimestamp,
		MaxClaimableSupply:     t.MaxClaimableSupply,
		SupplyClaimed:          t.SupplyClaimed,
		QuantityLimitPerWallet: t.QuantityLimitPerWallet,
		MerkleRoot:             common.Hash(t.MerkleRoot),
		PricePerToken:          t.PricePerToken,
		Currency:               t.Currency,
		Metadata:               t.Metadata,
	}, nil
}

// convertTuple turns the anonymous struct the ABI decoder produces into T.
func convertTuple[T any](in interface{}) (T, error) {
	var zero T
	switch v := in.(type) {
	case nil:
		return zero, fmt.Errorf("empty tuple")
	case T:
		return v, nil
	case *T:
		if v == nil {
			return zero, fmt.Errorf("empty tuple")
		}
		return *v, nil
	}
	want := reflect.TypeOf(zero)
	rv := reflect.ValueOf(in)
	if rv.Kind() != reflect.Struct || !rv.Type().ConvertibleTo(want) {
		return zero, fmt.Errorf("got %T, want %s", in, want)
	}
	return rv.Convert(want).Interface().(T), nil
}
