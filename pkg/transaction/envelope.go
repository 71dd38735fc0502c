package transaction

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// Envelope is an unsigned (or wallet-signed) transaction handed between preparation and submission.
type Envelope struct {
	// Extrinsic is the 0x-prefixed encoded call.
	Extrinsic   string       `json:"extrinsic" validate:"required"`
	Submitter   string       `json:"submitter" validate:"required"`
	CTypeID     string       `json:"ctypeId" validate:"required"`
	UserDID     string       `json:"userDid" validate:"required"`
	Network     network.Name `json:"network" validate:"required"`
	PaymentType Mode         `json:"paymentType" validate:"required,oneof=system user"`
	SigningType Mode         `json:"signingType" validate:"required,oneof=system user"`
}

// Authorization returns the envelope's payer/signer mode.
func (e *Envelope) Authorization() (Authorization, error) {
	return ParseAuthorization(e.PaymentType, e.SigningType)
}

// SubmissionResult identifies an included transaction.
type SubmissionResult struct {
	BlockHash       string `json:"blockHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	TransactionHash string `json:"transactionHash"`
	ResourceHash    string `json:"resourceHash"`
}

func newResult(inc *ledger.Inclusion, resourceHash string) *SubmissionResult {
	return &SubmissionResult{
		BlockHash:       hexutil.Encode(inc.BlockHash[:]),
		BlockNumber:     inc.BlockNumber,
		TransactionHash: hexutil.Encode(inc.TxHash[:]),
		ResourceHash:    resourceHash,
	}
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
