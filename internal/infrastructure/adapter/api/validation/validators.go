package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger specific tags to gin's validator:
//
//	decimal_gt0  a string holding a ledger amount greater than zero
//	txtype       a known transaction type, case insensitive
func RegisterValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return Register(engine)
}

// Register adds the custom tags to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("decimal_gt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("txtype", transactionType)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	amount, err := entity.ParseAmount(fl.Field().String())
	return err == nil && amount.IsPositive()
}

func transactionType(fl validator.FieldLevel) bool {
	_, err := entity.ParseTransactionType(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// Describe turns a binding error into a short client message
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, describeField(fe))
	}
	return strings.Join(messages, "; ")
}

func describeField(fe validator.FieldError) string {
	field := toSnakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "decimal_gt0":
		return field + " must be a decimal greater than zero with at most 2 decimal places"
	case "txtype":
		return field + " must be one of " + strings.Join(transactionTypeNames(), ", ")
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func transactionTypeNames() []string {
	types := entity.TransactionTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
