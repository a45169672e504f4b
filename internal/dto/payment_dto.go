// FILE: internal/dto/payment_dto.go
package dto

import "github.com/google/uuid"

type CheckoutRequest struct {
	GiftId uuid.UUID `json:"gift_id" validate:"required"`
	// Email receives the share link and receipt after approval.
	Email string `json:"email" validate:"omitempty,email"`
}

type CheckoutResponse struct {
	GiftId        uuid.UUID `json:"gift_id"`
	PaymentId     string    `json:"payment_id"`
	PaymentStatus string    `json:"payment_status"`
	AmountBRL     float64   `json:"amount_brl"`
	ShareURL      string    `json:"share_url,omitempty"`
}

// MidtransWebhookRequest mirrors the notification payload of the Midtrans
// HTTP API. Signature = SHA512(order_id + status_code + gross_amount + server key).
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionId     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
}

type PaymentStatusResponse struct {
	GiftId        uuid.UUID `json:"gift_id"`
	PaymentId     string    `json:"payment_id"`
	PaymentStatus string    `json:"payment_status"`
}
