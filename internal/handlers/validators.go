package handlers

import (
	"fmt"

	"github.com/SscSPs/campaign_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// paymentMethodTag is the binding tag that accepts only the known payment methods.
const paymentMethodTag = "payment_method"

func validPaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).IsValid()
}

// registerValidators installs the custom tags on gin's validator engine.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(paymentMethodTag, validPaymentMethod)
}
