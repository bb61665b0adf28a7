package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type GrantAccessRequest struct {
	UserID uint `json:"user_id"`
}

func (req *GrantAccessRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
	)
}
