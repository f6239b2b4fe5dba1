package common

import (
	"errors"
	"etm/src/config"
	"etm/src/lib"
	"etm/src/models"
	"etm/src/types"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBelowMinimum       = errors.New("earnings are below the minimum withdrawal amount")
	ErrInstrumentDeclined = errors.New("payout account could not be verified")
	ErrTransferFailed     = errors.New("transfer could not be completed")
)

// ProcessWithdrawal pays out a host's full balance. The flow crosses an
// external financial provider, so instead of one atomic unit it records a
// pending Withdrawal before any gateway call and compensates by marking it
// failed; earnings are only zeroed after the transfer goes through.
func ProcessWithdrawal(dbh *gorm.DB, gateway *lib.PaystackClient, userId uint, body *types.WithdrawRequestBody) (*models.Withdrawal, error) {
	var user models.User
	if err := dbh.
		Where(&models.User{ID: userId}).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.TotalEarnings < config.GetMinimumWithdrawal() {
		return nil, ErrBelowMinimum
	}
	amount := ToMinorUnits(user.TotalEarnings)

	withdrawal := models.Withdrawal{
		ID:     uuid.New(),
		UserID: user.ID,
		Amount: amount,
		Status: types.WITHDRAWAL_PENDING,
	}
	if err := dbh.Create(&withdrawal).Error; err != nil {
		return nil, err
	}

	accountName, err := gateway.ResolveAccount(body.AccountNumber, body.BankCode)
	if err != nil {
		log.Printf("Could not resolve payout account for user %d: %s\n", user.ID, err.Error())
		markFailed(dbh, &withdrawal, ErrInstrumentDeclined.Error())
		return &withdrawal, ErrInstrumentDeclined
	}
	if accountName == "" {
		accountName = body.AccountName
	}
	recipient, err := gateway.CreateTransferRecipient(accountName, body.AccountNumber, body.BankCode)
	if err != nil {
		log.Printf("Could not create transfer recipient for user %d: %s\n", user.ID, err.Error())
		markFailed(dbh, &withdrawal, ErrTransferFailed.Error())
		return &withdrawal, ErrTransferFailed
	}
	reference, err := gateway.InitiateTransfer(recipient, amount, "Host earnings payout")
	if err != nil {
		log.Printf("Transfer failed for user %d: %s\n", user.ID, err.Error())
		markFailed(dbh, &withdrawal, ErrTransferFailed.Error())
		return &withdrawal, ErrTransferFailed
	}

	err = dbh.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Withdrawal{}).
			Where("id = ?", withdrawal.ID).
			Updates(&models.Withdrawal{
				Status:               types.WITHDRAWAL_COMPLETED,
				TransactionReference: &reference,
			}).
			Error; err != nil {
			return err
		}
		// Partial withdrawal is not supported; the full balance moved.
		if err := tx.
			Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("total_earnings", 0).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Money moved but bookkeeping failed; the pending record plus the
		// gateway reference keep the attempt auditable.
		log.Printf("Error finalizing withdrawal %s: %s\n", withdrawal.ID, err.Error())
		return &withdrawal, err
	}
	withdrawal.Status = types.WITHDRAWAL_COMPLETED
	withdrawal.TransactionReference = &reference
	return &withdrawal, nil
}

func markFailed(dbh *gorm.DB, w *models.Withdrawal, reason string) {
	if err := dbh.
		Model(&models.Withdrawal{}).
		Where("id = ?", w.ID).
		Updates(&models.Withdrawal{
			Status:        types.WITHDRAWAL_FAILED,
			FailureReason: &reason,
		}).
		Error; err != nil {
		log.Printf("Could not mark withdrawal %s as failed: %s\n", w.ID, err.Error())
	}
	w.Status = types.WITHDRAWAL_FAILED
	w.FailureReason = &reason
}
