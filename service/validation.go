package service

import (
	"errors"
	"reflect"
	"strings"

	"restaurant-order-api/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// CartLine is an unpriced (menu item, quantity) pair from the customer.
type CartLine struct {
	MenuItemID uint `json:"id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"gte=1,lte=1000"`
}

// OrderRequest is the order submission schema. Field order matters: when several
// fields are invalid the first one declared here is reported.
type OrderRequest struct {
	CustomerName    string               `json:"customer_name" validate:"notblank"`
	CustomerPhone   string               `json:"customer_phone" validate:"min=10"`
	CustomerAddress string               `json:"customer_address" validate:"min=5"`
	Items           []CartLine           `json:"items" validate:"min=1,dive"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"oneof=cod online"`
}

var fieldMessages = map[string]string{
	"customer_name":    "Name is required",
	"customer_phone":   "Valid phone number is required",
	"customer_address": "Address must be complete",
	"items":            "Cart cannot be empty",
	"payment_method":   "Payment method must be cod or online",
	"status":           "Unknown order status",
}

// newValidator builds a validator that reports JSON field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank ships with the validator module but is not registered by default.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs the schema and turns the first failure into a ValidationError.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "body", Message: err.Error()}
	}
	first := fieldErrs[0]
	field := first.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &ValidationError{Field: field, Message: messageFor(field, first)}
}

func messageFor(field string, fe validator.FieldError) string {
	root := field
	if i := strings.IndexAny(root, ".["); i >= 0 {
		root = root[:i]
	}
	if root == "items" && field != "items" {
		switch fe.Field() {
		case "quantity":
			return "Quantity must be between 1 and 1000"
		case "id":
			return "Item id is required"
		}
	}
	if msg, ok := fieldMessages[root]; ok {
		return msg
	}
	return "failed on " + fe.Tag()
}
