package anchorstore

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/kilt-attester/pkg/network"
)

// CTypeDao maps to the 'ctypes' table.
type CTypeDao struct {
	bun.BaseModel `bun:"table:ctypes,alias:c"`
	ID            string          `bun:"id,pk,type:varchar(80)"`
	Schema        json.RawMessage `bun:"schema,notnull,type:jsonb"`
	OwnerDID      string          `bun:"owner_did,notnull,type:varchar(255)"`
	Network       string          `bun:"network,notnull,type:varchar(32)"`
	PaymentType   string          `bun:"payment_type,notnull,type:varchar(16)"`
	SigningType   string          `bun:"signing_type,notnull,type:varchar(16)"`
	BlockHash     string          `bun:"block_hash,notnull,type:varchar(66)"`
	BlockNumber   int64           `bun:"block_number,notnull"`
	TxHash        string          `bun:"tx_hash,notnull,type:varchar(66)"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// AttestationDao maps to the 'attestations' table.
type AttestationDao struct {
	bun.BaseModel `bun:"table:attestations,alias:a"`
	ClaimHash     string    `bun:"claim_hash,pk,type:varchar(66)"`
	CTypeID       string    `bun:"ctype_id,notnull,type:varchar(80)"`
	AttesterDID   string    `bun:"attester_did,notnull,type:varchar(255)"`
	OwnerDID      string    `bun:"owner_did,notnull,type:varchar(255)"`
	Network       string    `bun:"network,notnull,type:varchar(32)"`
	BlockHash     string    `bun:"block_hash,notnull,type:varchar(66)"`
	BlockNumber   int64     `bun:"block_number,notnull"`
	TxHash        string    `bun:"tx_hash,notnull,type:varchar(66)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toCTypeDao(rec *CTypeRecord) *CTypeDao {
	return &CTypeDao{
		ID:          rec.ID,
		Schema:      rec.Schema,
		OwnerDID:    rec.Owner,
		Network:     string(rec.Network),
		PaymentType: rec.PaymentType,
		SigningType: rec.SigningType,
		BlockHash:   rec.BlockHash,
		BlockNumber: int64(rec.BlockNumber),
		TxHash:      rec.TxHash,
		CreatedAt:   rec.CreatedAt,
	}
}

func toCTypeRecord(dao *CTypeDao) *CTypeRecord {
	return &CTypeRecord{
		ID:          dao.ID,
		Schema:      dao.Schema,
		Owner:       dao.OwnerDID,
		Network:     network.Name(dao.Network),
		PaymentType: dao.PaymentType,
		SigningType: dao.SigningType,
		BlockHash:   dao.BlockHash,
		BlockNumber: uint64(dao.BlockNumber),
		TxHash:      dao.TxHash,
		CreatedAt:   dao.CreatedAt,
	}
}

func toAttestationDao(rec *AttestationRecord) *AttestationDao {
	return &AttestationDao{
		ClaimHash:   rec.ClaimHash,
		CTypeID:     rec.CTypeID,
		AttesterDID: rec.Attester,
		OwnerDID:    rec.Owner,
		Network:     string(rec.Network),
		BlockHash:   rec.BlockHash,
		BlockNumber: int64(rec.BlockNumber),
		TxHash:      rec.TxHash,
		CreatedAt:   rec.CreatedAt,
	}
}

func toAttestationRecord(dao *AttestationDao) *AttestationRecord {
	return &AttestationRecord{
		ClaimHash:   dao.ClaimHash,
		CTypeID:     dao.CTypeID,
		Attester:    dao.AttesterDID,
		Owner:       dao.OwnerDID,
		Network:     network.Name(dao.Network),
		BlockHash:   dao.BlockHash,
		BlockNumber: uint64(dao.BlockNumber),
		TxHash:      dao.TxHash,
		CreatedAt:   dao.CreatedAt,
	}
}
