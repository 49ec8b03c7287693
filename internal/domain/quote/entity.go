package quote

import (
	"time"

	"github.com/oficinaplus/oficina-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Respond(q *models.Quote, amount float64, message string, now time.Time) error {
	if err := CanRespond(Status(q.Status)); err != nil {
		return err
	}

	q.Status = string(StatusQuoted)
	q.Amount = &amount
	q.Message = message
	q.RespondedAt = &now
	return nil
}

func Accept(q *models.Quote, now time.Time) error {
	if err := CanDecide(Status(q.Status)); err != nil {
		return err
	}

	q.Status = string(StatusAccepted)
	q.DecidedAt = &now
	return nil
}

func Reject(q *models.Quote, now time.Time) error {
	if err := CanDecide(Status(q.Status)); err != nil {
		return err
	}

	q.Status = string(StatusRejected)
	q.DecidedAt = &now
	return nil
}

func Expire(q *models.Quote) error {
	if err := CanExpire(Status(q.Status)); err != nil {
		return err
	}

	q.Status = string(StatusExpired)
	return nil
}
