// Package ledgertest provides an in-memory KILT ledger implementing ledger.Dialer.
//
// Calls and extrinsics are JSON encoded instead of SCALE. The fake keeps the
// properties services depend on: account nonces and DID tx counters are checked,
// duplicate CTypes and attestations are rejected with dispatch errors, and every
// dial and close is counted.
package ledgertest

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

const submitDIDCall = "Did.submit_did_call"

// Attestation is an anchored attestation as stored by the fake.
type Attestation struct {
	CTypeHash [32]byte
	Attester  string
	Payer     string
}

type chain struct {
	docs         map[string]*did.Document
	ctypes       map[[32]byte]string
	attestations map[[32]byte]Attestation
	nonces       map[string]uint64
	balances     map[string]*big.Int
	block        uint64
	submitted    int
}

func newChain() *chain {
	return &chain{
		docs:         make(map[string]*did.Document),
		ctypes:       make(map[[32]byte]string),
		attestations: make(map[[32]byte]Attestation),
		nonces:       make(map[string]uint64),
		balances:     make(map[string]*big.Int),
		block:        100,
	}
}

// Ledger is an in-memory multi-network ledger.
type Ledger struct {
	mu     sync.Mutex
	chains map[network.Name]*chain
	dials  map[network.Name]int
	open   int

	dialErr     map[network.Name]error
	submitErr   error
	submitDelay time.Duration
	rejectAll   *ledger.DispatchError
}

// New creates a ledger serving the given networks.
func New(names ...network.Name) *Ledger {
	l := &Ledger{
		chains:  make(map[network.Name]*chain),
		dials:   make(map[network.Name]int),
		dialErr: make(map[network.Name]error),
	}
	for _, n := range names {
		l.chains[n] = newChain()
	}
	return l
}

// AddDocument registers a DID document on a network.
func (l *Ledger) AddDocument(n network.Name, doc *did.Document) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *doc
	l.chains[n].docs[doc.ID] = &cp
}

// Document returns the current on-chain state of a DID document.
func (l *Ledger) Document(n network.Name, id string) (*did.Document, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, ok := l.chains[n].docs[id]
	if !ok {
		return nil, false
	}
	cp := *doc
	return &cp, true
}

// FailDial makes dials to n fail with err.
func (l *Ledger) FailDial(n network.Name, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dialErr[n] = err
}

// FailSubmit makes SubmitAndWatch fail with a transport error.
func (l *Ledger) FailSubmit(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.submitErr = err
}

// RejectAll makes every submission fail with the given dispatch error.
func (l *Ledger) RejectAll(err *ledger.DispatchError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rejectAll = err
}

// SetSubmitDelay delays inclusion, to exercise timeouts and concurrent submissions.
func (l *Ledger) SetSubmitDelay(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.submitDelay = d
}

// SetBalance sets the free balance of an address.
func (l *Ledger) SetBalance(n network.Name, address string, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chains[n].balances[address] = amount
}

// Dials returns how many connections were opened to n.
func (l *Ledger) Dials(n network.Name) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dials[n]
}

// TotalDials returns how many connections were opened overall.
func (l *Ledger) TotalDials() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, d := range l.dials {
		total += d
	}
	return total
}

// OpenConns returns the number of connections not yet closed.
func (l *Ledger) OpenConns() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Submitted returns how many extrinsics were submitted to n.
func (l *Ledger) Submitted(n network.Name) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chains[n].submitted
}

// HasCType reports whether a CType hash is registered on n.
func (l *Ledger) HasCType(n network.Name, hash [32]byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.chains[n].ctypes[hash]
	return ok
}

// Attestation returns the attestation anchored for a claim hash on n.
func (l *Ledger) Attestation(n network.Name, claimHash [32]byte) (Attestation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.chains[n].attestations[claimHash]
	return a, ok
}

// Dial implements ledger.Dialer.
func (l *Ledger) Dial(ctx context.Context, n network.Name) (ledger.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, ledger.Unreachable("dial", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dials[n]++
	if err := l.dialErr[n]; err != nil {
		return nil, ledger.Unreachable("dial "+string(n), err)
	}
	if _, ok := l.chains[n]; !ok {
		return nil, ledger.Unreachable("dial "+string(n), errors.New("no such network"))
	}
	l.open++
	return &conn{l: l, network: n}, nil
}

type encodedCall struct {
	Method    string   `json:"method"`
	Schema    []byte   `json:"schema,omitempty"`
	ClaimHash [32]byte `json:"claimHash,omitempty"`
	CTypeHash [32]byte `json:"ctypeHash,omitempty"`

	DID       string `json:"did,omitempty"`
	TxCounter uint64 `json:"txCounter,omitempty"`
	Submitter string `json:"submitter,omitempty"`
	Inner     []byte `json:"inner,omitempty"`
	KeyID     string `json:"keyId,omitempty"`
	Signature []byte `json:"signature,omitempty"`
}

type extrinsic struct {
	Signer string `json:"signer"`
	Nonce  uint64 `json:"nonce"`
	Call   []byte `json:"call"`
}

type conn struct {
	l       *Ledger
	network network.Name
	closed  bool
}

func (c *conn) chain() *chain { return c.l.chains[c.network] }

func (c *conn) check() error {
	if c.closed {
		return ledger.Unreachable("use", errors.New("connection closed"))
	}
	return nil
}

func (c *conn) ResolveDID(_ context.Context, id did.Identifier) (*did.Document, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	if err := c.check(); err != nil {
		return nil, err
	}
	doc, ok := c.chain().docs[id.String()]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (c *conn) EncodeCall(_ context.Context, call ledger.Call) ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	switch v := call.(type) {
	case ledger.RawCall:
		return []byte(v), nil
	case ledger.RegisterCType:
		return json.Marshal(encodedCall{Method: v.Method(), Schema: v.Schema})
	case ledger.AddAttestation:
		return json.Marshal(encodedCall{Method: v.Method(), ClaimHash: v.ClaimHash, CTypeHash: v.CTypeHash})
	default:
		return nil, fmt.Errorf("unsupported call %T", call)
	}
}

func (c *conn) AuthorizeCall(
	_ context.Context,
	call []byte,
	doc *did.Document,
	signer keys.Signer,
	submitter string,
) ([]byte, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	vm, ok := doc.MethodByPublicKey(signer.PublicKey())
	if !ok {
		return nil, fmt.Errorf("signer key is not part of %s", doc.ID)
	}
	op := encodedCall{
		Method:    submitDIDCall,
		DID:       doc.ID,
		TxCounter: doc.LastTxCounter + 1,
		Submitter: submitter,
		Inner:     call,
		KeyID:     vm.ID,
	}
	payload, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return nil, err
	}
	op.Signature = sig
	return json.Marshal(op)
}

func (c *conn) VerifyDIDCall(_ context.Context, call []byte, want ledger.DIDAuthorization) error {
	if err := c.check(); err != nil {
		return err
	}
	var op encodedCall
	if err := json.Unmarshal(call, &op); err != nil {
		return fmt.Errorf("%w: cannot decode call", ledger.ErrCallMismatch)
	}
	switch {
	case op.Method != submitDIDCall:
		return fmt.Errorf("%w: %s is not %s", ledger.ErrCallMismatch, op.Method, submitDIDCall)
	case op.DID != want.DID.String():
		return fmt.Errorf("%w: authorized by %s", ledger.ErrCallMismatch, op.DID)
	case op.Submitter != want.Submitter:
		return fmt.Errorf("%w: submitter %s", ledger.ErrCallMismatch, op.Submitter)
	case !bytes.Equal(op.Inner, want.Call):
		return fmt.Errorf("%w: inner call differs", ledger.ErrCallMismatch)
	}
	return nil
}

func (c *conn) VerifyExtrinsic(ctx context.Context, raw []byte, want ledger.DIDAuthorization) error {
	var ext extrinsic
	if err := json.Unmarshal(raw, &ext); err != nil {
		return fmt.Errorf("%w: cannot decode extrinsic", ledger.ErrCallMismatch)
	}
	if ext.Signer != want.Submitter {
		return fmt.Errorf("%w: signed by %s", ledger.ErrCallMismatch, ext.Signer)
	}
	return c.VerifyDIDCall(ctx, ext.Call, want)
}

func (c *conn) SignExtrinsic(_ context.Context, call []byte, payer ledger.Payer) ([]byte, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	if err := c.check(); err != nil {
		return nil, err
	}
	return json.Marshal(extrinsic{Signer: payer.Address(), Nonce: c.chain().nonces[payer.Address()], Call: call})
}

func (c *conn) SubmitAndWatch(ctx context.Context, raw []byte, _ ledger.WatchOptions) (*ledger.Inclusion, error) {
	c.l.mu.Lock()
	delay, submitErr := c.l.submitDelay, c.l.submitErr
	c.l.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, ledger.Unreachable("submit", submitErr)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ledger.Unreachable("watch", ctx.Err())
		}
	}

	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	ch := c.chain()
	ch.submitted++

	if c.l.rejectAll != nil {
		return nil, c.l.rejectAll
	}

	var ext extrinsic
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, &ledger.DispatchError{Details: "invalid transaction: cannot decode extrinsic"}
	}
	if ext.Nonce != ch.nonces[ext.Signer] {
		return nil, &ledger.DispatchError{Details: fmt.Sprintf("invalid transaction: stale nonce %d", ext.Nonce)}
	}
	ch.nonces[ext.Signer]++

	var call encodedCall
	if err := json.Unmarshal(ext.Call, &call); err != nil {
		return nil, &ledger.DispatchError{Details: "cannot decode call"}
	}
	if err := ch.apply(call, ext.Signer); err != nil {
		return nil, err
	}

	ch.block++
	var num [8]byte
	binary.BigEndian.PutUint64(num[:], ch.block)
	return &ledger.Inclusion{
		BlockHash:   blake2b.Sum256(num[:]),
		BlockNumber: ch.block,
		TxHash:      blake2b.Sum256(raw),
	}, nil
}

func (ch *chain) apply(call encodedCall, payer string) error {
	origin := ""
	if call.Method == submitDIDCall {
		doc, ok := ch.docs[call.DID]
		if !ok {
			return &ledger.DispatchError{Module: "Did", Name: "NotFound"}
		}
		if call.TxCounter != doc.LastTxCounter+1 {
			return &ledger.DispatchError{Module: "Did", Name: "InvalidNonce"}
		}
		if call.Submitter != payer {
			return &ledger.DispatchError{Module: "Did", Name: "BadDidOrigin", Details: "submitter mismatch"}
		}
		if len(doc.AssertionMethod) == 0 || doc.AssertionMethod[0] != call.KeyID {
			return &ledger.DispatchError{Module: "Did", Name: "InvalidSignature"}
		}
		doc.LastTxCounter++
		origin = call.DID

		var inner encodedCall
		if err := json.Unmarshal(call.Inner, &inner); err != nil {
			return &ledger.DispatchError{Details: "cannot decode inner call"}
		}
		call = inner
	}

	switch call.Method {
	case "Ctype.add":
		if origin == "" {
			return &ledger.DispatchError{Details: "BadOrigin"}
		}
		hash := blake2b.Sum256(call.Schema)
		if _, exists := ch.ctypes[hash]; exists {
			return &ledger.DispatchError{Module: "Ctype", Name: "AlreadyExists"}
		}
		ch.ctypes[hash] = origin
	case "Attestation.add":
		if origin == "" {
			return &ledger.DispatchError{Details: "BadOrigin"}
		}
		if _, ok := ch.ctypes[call.CTypeHash]; !ok {
			return &ledger.DispatchError{Module: "Attestation", Name: "CTypeNotFound"}
		}
		if _, exists := ch.attestations[call.ClaimHash]; exists {
			return &ledger.DispatchError{Module: "Attestation", Name: "AlreadyAttested"}
		}
		ch.attestations[call.ClaimHash] = Attestation{CTypeHash: call.CTypeHash, Attester: origin, Payer: payer}
	default:
		return &ledger.DispatchError{Details: "unknown call " + call.Method}
	}
	return nil
}

// RegisterCTypeDirect registers a CType hash without going through a submission.
func (l *Ledger) RegisterCTypeDirect(n network.Name, hash [32]byte, creator string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chains[n].ctypes[hash] = creator
}

func (c *conn) FreeBalance(_ context.Context, address string) (*big.Int, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	if err := c.check(); err != nil {
		return nil, err
	}
	if b, ok := c.chain().balances[address]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (c *conn) Close() error {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.l.open--
	return nil
}
