package requests

import (
	"github.com/go-playground/validator/v10"
)

type PayRequest struct {
	Phone         string  `json:"phone" validate:"required"`
	PackageAmount float64 `json:"packageAmount" validate:"required,gt=0"`
}

func (r *PayRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
