package payments

type CompletePaymentRequest struct {
	Method        string  `json:"method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	ReferenceCode string  `json:"reference_code" binding:"required,min=4"`
}
