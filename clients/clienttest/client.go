package clienttest

import (
	"context"
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/types"
)

var _ clients.Client = (*Client)(nil)

// Client is a full clients.Client: reads are served by the embedded Reader
// and writes are recorded instead of broadcast.
type Client struct {
	*Reader

	chainID int64

	mu       sync.Mutex
	writeErr error
	sent     []*types.MintCall
	senders  []common.Address
	closed   bool
}

func NewClient(chainID int64) *Client {
	return &Client{Reader: NewReader(), chainID: chainID}
}

// FailWrites makes every WriteContract return err.
func (c *Client) FailWrites(err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeErr = err
	return c
}

func (c *Client) WriteContract(ctx context.Context, call *types.MintCall, key *ecdsa.PrivateKey) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, err
	}
	if key == nil {
		return common.Hash{}, clients.ErrNoSigner
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return common.Hash{}, c.writeErr
	}
	c.sent = append(c.sent, call)
	c.senders = append(c.senders, crypto.PubkeyToAddress(key.PublicKey))
	return crypto.Keccak256Hash(call.Data), nil
}

func (c *Client) ChainID() int64 {
	return c.chainID
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Sent returns the calls written so far.
func (c *Client) Sent() []*types.MintCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.MintCall(nil), c.sent...)
}

// Senders returns the signer of each written call.
func (c *Client) Senders() []common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]common.Address(nil), c.senders...)
}

func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
