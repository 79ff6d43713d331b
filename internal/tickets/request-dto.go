package tickets

type RefundRequest struct {
	Reason string `json:"reason" binding:"required,min=4"`
}
