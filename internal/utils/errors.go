package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials     = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive        = errors.New("ACCOUNT_INACTIVE")
	ErrAccountNotVerified     = errors.New("ACCOUNT_NOT_VERIFIED")
	ErrEmailTaken             = errors.New("EMAIL_TAKEN")
	ErrInvalidVerification    = errors.New("INVALID_VERIFICATION_CODE")
	ErrInvalidRefreshToken    = errors.New("INVALID_REFRESH_TOKEN")
	ErrPatientNotFound        = errors.New("PATIENT_NOT_FOUND")
	ErrProductNotFound        = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound          = errors.New("ORDER_NOT_FOUND")
	ErrInsufficientStock      = errors.New("INSUFFICIENT_STOCK")
	ErrShippingLocked         = errors.New("SHIPPING_LOCKED")
	ErrShippingNotOffered     = errors.New("SHIPPING_NOT_OFFERED")
	ErrInvalidStatusChange    = errors.New("INVALID_STATUS_CHANGE")
	ErrInvoiceAlreadyIssued   = errors.New("INVOICE_ALREADY_ISSUED")
	ErrInvoiceRequiresShipped = errors.New("INVOICE_REQUIRES_SHIPPED")
)
