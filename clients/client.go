package clients

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vitwit/mintprice/types"
)

// Reader reads contract view functions. Implementations return the decoded
// outputs of the method.
type Reader interface {
	ReadContract(ctx context.Context, call types.ReadCall) ([]interface{}, error)
}

// Writer submits a materialized mint call.
type Writer interface {
	WriteContract(ctx context.Context, call *types.MintCall, key *ecdsa.PrivateKey) (common.Hash, error)
}

type Client interface {
	Reader
	Writer
	ChainID() int64
	Close()
}
