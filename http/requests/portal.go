package requests

import (
	"github.com/go-playground/validator/v10"
)

// PortalLoginRequest carries the captive-portal form submission. MAC and IP
// originate from the redirect query parameters and come back as hidden fields.
type PortalLoginRequest struct {
	MAC     string `json:"mac" form:"mac" validate:"required"`
	IP      string `json:"ip" form:"ip"`
	Phone   string `json:"phone" form:"phone" validate:"required"`
	Profile string `json:"profile" form:"profile" validate:"required"`
}

func (r *PortalLoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
