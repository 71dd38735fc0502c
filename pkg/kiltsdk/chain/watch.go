package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"golang.org/x/crypto/blake2b"

	"github.com/chainsafe/kilt-attester/pkg/ledger"
)

// statusSubscription is the subset of author.ExtrinsicStatusSubscription the watcher reads.
type statusSubscription interface {
	Chan() <-chan types.ExtrinsicStatus
	Err() <-chan error
}

// waitForInclusion blocks until the extrinsic is in a block (or finalized when requested),
// rejected by the pool, or ctx is done. Only the block hash is filled in.
func waitForInclusion(ctx context.Context, sub statusSubscription, opts ledger.WatchOptions) (*ledger.Inclusion, error) {
	for {
		select {
		case status, ok := <-sub.Chan():
			if !ok {
				return nil, ledger.Unreachable("watch", fmt.Errorf("status subscription closed"))
			}
			switch {
			case status.IsInBlock && !opts.WaitFinalization:
				return &ledger.Inclusion{BlockHash: status.AsInBlock}, nil
			case status.IsFinalized:
				return &ledger.Inclusion{BlockHash: status.AsFinalized, Finalized: true}, nil
			case status.IsDropped:
				return nil, &ledger.DispatchError{Details: "transaction dropped from the pool"}
			case status.IsInvalid:
				return nil, &ledger.DispatchError{Details: "invalid transaction"}
			case status.IsUsurped:
				return nil, &ledger.DispatchError{Details: "transaction usurped"}
			case status.IsFinalityTimeout:
				return nil, ledger.Unreachable("watch", fmt.Errorf("finality timeout"))
			}
		case err := <-sub.Err():
			return nil, ledger.Unreachable("watch", err)
		case <-ctx.Done():
			return nil, ledger.Unreachable("watch", ctx.Err())
		}
	}
}

// eventRecord is the part of a runtime event the dispatch check needs.
type eventRecord struct {
	Name           string
	ApplyExtrinsic *uint32
	Details        string
}

func (c *conn) events(hash types.Hash) ([]eventRecord, error) {
	ret, err := retriever.NewDefaultEventRetriever(state.NewEventProvider(c.api.RPC.State), c.api.RPC.State)
	if err != nil {
		return nil, err
	}
	events, err := ret.GetEvents(hash)
	if err != nil {
		return nil, err
	}

	records := make([]eventRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, toRecord(ev))
	}
	return records, nil
}

func toRecord(ev *parser.Event) eventRecord {
	rec := eventRecord{Name: ev.Name}
	if ev.Phase != nil && ev.Phase.IsApplyExtrinsic {
		idx := ev.Phase.AsApplyExtrinsic
		rec.ApplyExtrinsic = &idx
	}
	parts := make([]string, 0, len(ev.Fields))
	for _, f := range ev.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, f.Value))
	}
	rec.Details = strings.Join(parts, " ")
	return rec
}

// dispatchResult returns a DispatchError when the extrinsic at index failed.
func dispatchResult(records []eventRecord, index uint32) error {
	for _, r := range records {
		if r.ApplyExtrinsic == nil || *r.ApplyExtrinsic != index {
			continue
		}
		switch r.Name {
		case "System.ExtrinsicSuccess":
			return nil
		case "System.ExtrinsicFailed":
			return &ledger.DispatchError{Module: "System", Name: "ExtrinsicFailed", Details: r.Details}
		}
	}
	return nil
}

func txHash(ext []byte) [32]byte {
	return blake2b.Sum256(ext)
}
