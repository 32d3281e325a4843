package ledger

import "github.com/travelerp/backend/internal/domain/shared"

// Ledger errors surfaced to callers verbatim
var (
	ErrInvalidAmount        = shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	ErrNegativeAmount       = shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	ErrBelowReceived        = shared.NewDomainError("NET_SALES_BELOW_RECEIVED", "Sale amount cannot be less than amount already received")
	ErrPaymentInactive      = shared.NewDomainError("PAYMENT_INACTIVE", "Payment is refunded or canceled")
	ErrPayableCanceled      = shared.NewDomainError("PAYABLE_CANCELED", "Payable is canceled")
	ErrPayDownExceeds       = shared.NewDomainError("PAY_DOWN_EXCEEDS_BALANCE", "Payment exceeds the outstanding payable balance")
	ErrCurrencyMismatch     = shared.NewDomainError("CURRENCY_MISMATCH", "Currency does not match the payment currency")
	ErrInvalidReceiptMethod = shared.NewDomainError("INVALID_RECEIPT_METHOD", "Unknown receipt method")
	ErrInvalidStatus        = shared.NewDomainError("INVALID_STATUS", "Unknown status")
	ErrInvalidSource        = shared.NewDomainError("INVALID_SOURCE", "Unknown source type")
)
