package models

import (
	"etm/src/lib"
	"etm/src/types"
	"log"

	"github.com/google/uuid"
)

// Withdrawal is created pending before any payout call so an interrupted
// flow leaves an auditable record. It moves to exactly one terminal state.
type Withdrawal struct {
	ID     uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`
	UserID uint      `json:"user_id"`

	// Amount is in minor currency units, matching what the gateway moves.
	Amount               int64                  `json:"amount"`
	Status               types.WithdrawalStatus `gorm:"default:'pending'" json:"status"`
	TransactionReference *string                `json:"transaction_reference,omitempty"`
	FailureReason        *string                `json:"failure_reason,omitempty"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}

func WithdrawalCompletedProducer(payload map[string]any) error {
	err := lib.KafkaProduceMessage("withdrawals_completed_producer", "withdrawals-completed", payload)
	if err != nil {
		log.Printf("Error on producing message: %s\n", err.Error())
		return err
	}
	return nil
}
