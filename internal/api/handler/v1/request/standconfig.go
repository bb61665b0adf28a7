package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdateItemRequest carries a free-text answer. Choice items go through
// the selection endpoints instead; the domain layer rejects mismatches.
type UpdateItemRequest struct {
	Text string `json:"text"`
}

type SelectOptionRequest struct {
	OptionID string `json:"option_id"`
}

func (req *SelectOptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OptionID, validation.Required),
	)
}

type PaymentStatusRequest struct {
	Status string `json:"status"`
}

func (req *PaymentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("pending", "processing", "completed", "cancelled")),
	)
}
