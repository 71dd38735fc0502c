package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

type conn struct {
	api     *gsrpc.SubstrateAPI
	network network.Name
	meta    *types.Metadata
	runtime *types.RuntimeVersion
	genesis types.Hash
	closed  bool
	logger  *zap.Logger
}

var _ ledger.Conn = (*conn)(nil)

func (c *conn) ResolveDID(_ context.Context, id did.Identifier) (*did.Document, error) {
	account, err := id.AccountID()
	if err != nil {
		return nil, err
	}
	key, err := types.CreateStorageKey(c.meta, "Did", "Did", account[:])
	if err != nil {
		return nil, fmt.Errorf("did storage key: %w", err)
	}

	var details didDetails
	ok, err := c.api.RPC.State.GetStorageLatest(key, &details)
	if err != nil {
		return nil, ledger.Unreachable("query did", err)
	}
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return details.document(id), nil
}

func (c *conn) EncodeCall(_ context.Context, call ledger.Call) ([]byte, error) {
	var (
		rc  types.Call
		err error
	)
	switch v := call.(type) {
	case ledger.RawCall:
		return []byte(v), nil
	case ledger.RegisterCType:
		rc, err = types.NewCall(c.meta, "Ctype.add", types.NewBytes(v.Schema))
	case ledger.AddAttestation:
		rc, err = types.NewCall(c.meta, "Attestation.add", types.NewH256(v.ClaimHash[:]), types.NewH256(v.CTypeHash[:]), none{})
	default:
		return nil, fmt.Errorf("unsupported call %T", call)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", call.Method(), err)
	}
	return codec.Encode(rc)
}

func (c *conn) AuthorizeCall(
	_ context.Context,
	call []byte,
	doc *did.Document,
	signer keys.Signer,
	submitter string,
) ([]byte, error) {
	id, err := did.ParseFull(doc.ID)
	if err != nil {
		return nil, err
	}
	didAccount, err := id.AccountID()
	if err != nil {
		return nil, err
	}
	submitterPub, err := did.DecodeKiltAddress(submitter)
	if err != nil {
		return nil, fmt.Errorf("submitter: %w", err)
	}
	submitterAccount, err := types.NewAccountID(submitterPub[:])
	if err != nil {
		return nil, fmt.Errorf("submitter: %w", err)
	}

	header, err := c.api.RPC.Chain.GetHeaderLatest()
	if err != nil {
		return nil, ledger.Unreachable("latest header", err)
	}

	op := didCallOperation{
		DID:         types.AccountID(didAccount),
		TxCounter:   types.U64(doc.LastTxCounter + 1),
		Call:        rawCall(call),
		BlockNumber: types.U64(header.Number),
		Submitter:   *submitterAccount,
	}
	payload, err := codec.Encode(op)
	if err != nil {
		return nil, fmt.Errorf("encode did operation: %w", err)
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("sign did operation: %w", err)
	}

	rc, err := types.NewCall(c.meta, submitDIDCall, op, didSignature{Type: signer.KeyType(), Signature: sig})
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", submitDIDCall, err)
	}
	return codec.Encode(rc)
}

func (c *conn) SignExtrinsic(_ context.Context, call []byte, payer ledger.Payer) ([]byte, error) {
	if len(call) < 2 {
		return nil, errors.New("encoded call is too short")
	}
	ext := types.NewExtrinsic(types.Call{
		CallIndex: types.CallIndex{SectionIndex: call[0], MethodIndex: call[1]},
		Args:      call[2:],
	})

	var nonce uint64
	if err := c.api.Client.Call(&nonce, "system_accountNextIndex", payer.Address()); err != nil {
		return nil, ledger.Unreachable("account nonce", err)
	}

	opts := types.SignatureOptions{
		BlockHash:          c.genesis,
		Era:                types.ExtrinsicEra{IsImmortalEra: true},
		GenesisHash:        c.genesis,
		Nonce:              types.NewUCompactFromUInt(nonce),
		SpecVersion:        c.runtime.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: c.runtime.TransactionVersion,
	}
	kp := signature.KeyringPair{URI: payer.URI(), Address: payer.Address(), PublicKey: payer.PublicKey()}
	if err := ext.Sign(kp, opts); err != nil {
		return nil, fmt.Errorf("sign extrinsic: %w", err)
	}
	return codec.Encode(ext)
}

func (c *conn) SubmitAndWatch(ctx context.Context, raw []byte, opts ledger.WatchOptions) (*ledger.Inclusion, error) {
	var ext types.Extrinsic
	if err := codec.Decode(raw, &ext); err != nil {
		return nil, &ledger.DispatchError{Details: "invalid transaction: cannot decode extrinsic"}
	}

	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		// the node refuses invalid transactions synchronously
		var rpcErr interface{ ErrorCode() int }
		if errors.As(err, &rpcErr) {
			return nil, &ledger.DispatchError{Details: err.Error()}
		}
		return nil, ledger.Unreachable("submit", err)
	}
	defer sub.Unsubscribe()

	inc, err := waitForInclusion(ctx, sub, opts)
	if err != nil {
		return nil, err
	}
	// the node holds the re-encoded extrinsic, not necessarily raw
	submitted, err := codec.Encode(ext)
	if err != nil {
		return nil, fmt.Errorf("encode extrinsic: %w", err)
	}
	inc.TxHash = txHash(submitted)

	if err := c.checkDispatch(inc); err != nil {
		return nil, err
	}
	return inc, nil
}

// checkDispatch locates the extrinsic in its block, fills the block number and turns a
// System.ExtrinsicFailed event into a DispatchError.
func (c *conn) checkDispatch(inc *ledger.Inclusion) error {
	hash := types.NewHash(inc.BlockHash[:])
	block, err := c.api.RPC.Chain.GetBlock(hash)
	if err != nil {
		return ledger.Unreachable("get block", err)
	}
	inc.BlockNumber = uint64(block.Block.Header.Number)

	index, err := locateExtrinsic(block.Block.Extrinsics, inc.TxHash)
	if err != nil {
		c.logger.Warn("included extrinsic not found in block",
			zap.String("network", string(c.network)),
			zap.Uint64("block_number", inc.BlockNumber),
		)
		return ledger.Unreachable("locate extrinsic", fmt.Errorf("%w: block %d", err, inc.BlockNumber))
	}

	records, err := c.events(hash)
	if err != nil {
		return ledger.Unreachable("get events", err)
	}
	return dispatchResult(records, uint32(index))
}

var errExtrinsicNotFound = errors.New("extrinsic not found")

// locateExtrinsic returns the index of the extrinsic with the given hash.
func locateExtrinsic(exts []types.Extrinsic, hash [32]byte) (int, error) {
	for i, ext := range exts {
		enc, err := codec.Encode(ext)
		if err != nil {
			continue
		}
		if txHash(enc) == hash {
			return i, nil
		}
	}
	return -1, errExtrinsicNotFound
}

func (c *conn) FreeBalance(_ context.Context, address string) (*big.Int, error) {
	pub, err := did.DecodeKiltAddress(address)
	if err != nil {
		return nil, err
	}
	key, err := types.CreateStorageKey(c.meta, "System", "Account", pub[:])
	if err != nil {
		return nil, fmt.Errorf("account storage key: %w", err)
	}

	var info types.AccountInfo
	ok, err := c.api.RPC.State.GetStorageLatest(key, &info)
	if err != nil {
		return nil, ledger.Unreachable("query account", err)
	}
	if !ok || info.Data.Free.Int == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(info.Data.Free.Int), nil
}

func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.api.Client.Close()
	return nil
}
