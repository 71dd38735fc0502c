// Package chain implements the ledger port over Substrate JSON-RPC with go-substrate-rpc-client.
package chain

import (
	"context"
	"fmt"

	"github.com/bluele/gcache"
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

const metadataCacheSize = 8

// Dialer opens one websocket connection per operation. Runtime metadata is cached per
// network and spec version so that a dial costs a runtime-version query.
type Dialer struct {
	networks *network.Registry
	metadata gcache.Cache
	logger   *zap.Logger
}

// NewDialer creates a Dialer for the configured networks.
func NewDialer(networks *network.Registry, logger *zap.Logger) *Dialer {
	return &Dialer{
		networks: networks,
		metadata: gcache.New(metadataCacheSize).LRU().Build(),
		logger:   logger,
	}
}

var _ ledger.Dialer = (*Dialer)(nil)

// Dial connects to the network's endpoint. The returned connection must be closed.
func (d *Dialer) Dial(ctx context.Context, name network.Name) (ledger.Conn, error) {
	n, err := d.networks.Get(name)
	if err != nil {
		return nil, err
	}
	if n.Endpoint == "" {
		return nil, ledger.Unreachable("dial "+string(name), fmt.Errorf("no endpoint configured"))
	}

	api, err := dialContext(ctx, n.Endpoint)
	if err != nil {
		return nil, ledger.Unreachable("dial "+string(name), err)
	}

	c := &conn{api: api, network: name, logger: d.logger}
	if err := d.load(c); err != nil {
		api.Client.Close()
		return nil, err
	}
	return c, nil
}

// dialContext abandons the dial when ctx is done and closes the late connection.
func dialContext(ctx context.Context, url string) (*gsrpc.SubstrateAPI, error) {
	type result struct {
		api *gsrpc.SubstrateAPI
		err error
	}
	done := make(chan result, 1)
	go func() {
		api, err := gsrpc.NewSubstrateAPI(url)
		done <- result{api, err}
	}()

	select {
	case r := <-done:
		return r.api, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.err == nil {
				r.api.Client.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// load fills the runtime version, genesis hash and metadata of a fresh connection.
func (d *Dialer) load(c *conn) error {
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return ledger.Unreachable("runtime version", err)
	}
	genesis, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return ledger.Unreachable("genesis hash", err)
	}
	c.runtime = rv
	c.genesis = genesis

	key := fmt.Sprintf("%s/%d", c.network, rv.SpecVersion)
	if cached, err := d.metadata.Get(key); err == nil {
		c.meta = cached.(*types.Metadata)
		return nil
	}

	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return ledger.Unreachable("metadata", err)
	}
	if err := d.metadata.Set(key, meta); err != nil {
		d.logger.Warn("failed to cache runtime metadata", zap.String("network", string(c.network)), zap.Error(err))
	}
	d.logger.Debug("loaded runtime metadata",
		zap.String("network", string(c.network)),
		zap.Uint32("spec_version", uint32(rv.SpecVersion)),
	)
	c.meta = meta
	return nil
}
