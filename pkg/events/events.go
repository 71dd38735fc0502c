// Package events publishes best-effort notifications about users and anchored resources.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/metrics"
	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

// Topics
const (
	TopicUserCreated         = "kilt.users.created"
	TopicCTypeRegistered     = "kilt.ctypes.registered"
	TopicAttestationAnchored = "kilt.attestations.anchored"
)

// UserCreated is published the first time a DID logs in.
type UserCreated struct {
	ID        uuid.UUID `json:"id"`
	DID       string    `json:"did"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// CTypeRegistered is published once a CType registration is included in a block.
type CTypeRegistered struct {
	ID          string       `json:"id"`
	Owner       string       `json:"owner"`
	Network     network.Name `json:"network"`
	BlockHash   string       `json:"blockHash"`
	BlockNumber uint64       `json:"blockNumber"`
	TxHash      string       `json:"transactionHash"`
}

// AttestationAnchored is published once an attestation is included in a block.
type AttestationAnchored struct {
	ClaimHash   string       `json:"claimHash"`
	CTypeID     string       `json:"ctypeId"`
	Attester    string       `json:"attester"`
	Owner       string       `json:"owner"`
	Network     network.Name `json:"network"`
	BlockNumber uint64       `json:"blockNumber"`
	TxHash      string       `json:"transactionHash"`
}

// Notifier publishes domain notifications. Failures never propagate to the caller.
//
//go:generate mockery --name Notifier --output mocks --outpkg mocks --with-expecter
type Notifier interface {
	UserCreated(ctx context.Context, usr *user.User)
	CTypeRegistered(ctx context.Context, rec *anchorstore.CTypeRecord)
	AttestationAnchored(ctx context.Context, rec *anchorstore.AttestationRecord)
}

// WatermillNotifier implements Notifier on a watermill publisher.
type WatermillNotifier struct {
	publisher message.Publisher
	logger    *zap.Logger
}

// NewWatermillNotifier creates a notifier publishing JSON payloads with uuid message ids.
func NewWatermillNotifier(publisher message.Publisher, logger *zap.Logger) *WatermillNotifier {
	return &WatermillNotifier{publisher: publisher, logger: logger}
}

func (n *WatermillNotifier) UserCreated(ctx context.Context, usr *user.User) {
	n.publish(ctx, TopicUserCreated, UserCreated{
		ID:        usr.ID,
		DID:       usr.DID,
		Roles:     usr.Roles,
		CreatedAt: usr.CreatedAt,
	})
}

func (n *WatermillNotifier) CTypeRegistered(ctx context.Context, rec *anchorstore.CTypeRecord) {
	n.publish(ctx, TopicCTypeRegistered, CTypeRegistered{
		ID:          rec.ID,
		Owner:       rec.Owner,
		Network:     rec.Network,
		BlockHash:   rec.BlockHash,
		BlockNumber: rec.BlockNumber,
		TxHash:      rec.TxHash,
	})
}

func (n *WatermillNotifier) AttestationAnchored(ctx context.Context, rec *anchorstore.AttestationRecord) {
	n.publish(ctx, TopicAttestationAnchored, AttestationAnchored{
		ClaimHash:   rec.ClaimHash,
		CTypeID:     rec.CTypeID,
		Attester:    rec.Attester,
		Owner:       rec.Owner,
		Network:     rec.Network,
		BlockNumber: rec.BlockNumber,
		TxHash:      rec.TxHash,
	})
}

func (n *WatermillNotifier) publish(ctx context.Context, topic string, event any) {
	if err := n.send(ctx, topic, event); err != nil {
		metrics.EventsPublishFailures.WithLabelValues(topic).Inc()
		n.logger.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}

func (n *WatermillNotifier) send(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)

	if err := n.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
