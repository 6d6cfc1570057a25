package dto

type CheckoutRequest struct {
	Tier string `json:"tier" validate:"required"`
}

type CheckoutResponse struct {
	OrderId         string `json:"order_id"`
	SnapToken       string `json:"snap_token"`
	SnapRedirectUrl string `json:"snap_redirect_url"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}
