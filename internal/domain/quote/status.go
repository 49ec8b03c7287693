package quote

import "github.com/oficinaplus/oficina-api/internal/httperr"

// ===============================
// Quote Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusQuoted   Status = "quoted"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// ===============================
// Validations
// ===============================

// CanRespond define se a oficina ainda pode precificar o pedido
func CanRespond(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanDecide define se o motorista pode aceitar/recusar
func CanDecide(current Status) error {
	if current != StatusQuoted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanExpire: só pedidos ainda abertos expiram
func CanExpire(current Status) error {
	if current != StatusPending && current != StatusQuoted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
