package form

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"transaction-entry/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Field keys, matching the payload's JSON names
const (
	FieldTransactionType = "transaction_type"
	FieldCategory        = "category"
	FieldAmount          = "amount"
	FieldDescription     = "description"
	FieldAccountNumber   = "account_number"
)

const MaxDescriptionLength = 50

var minAmount = decimal.New(1, -2)

// entry is the form input as checked by the validator. Rules stop at the
// first failing tag of each field.
type entry struct {
	TransactionType string `json:"transaction_type" validate:"oneof=Income Expense"`
	Category        string `json:"category" validate:"required,category"`
	Amount          string `json:"amount" validate:"required,decimal_amount,positive_amount,min_amount,float64_amount"`
	Description     string `json:"description" validate:"max=50"`
	AccountNumber   string `json:"account_number" validate:"notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	rules := map[string]validator.Func{
		"category":        validCategory,
		"notblank":        validators.NotBlank,
		"decimal_amount":  amountRule(func(decimal.Decimal) bool { return true }),
		"positive_amount": amountRule(decimal.Decimal.IsPositive),
		"min_amount":      amountRule(func(d decimal.Decimal) bool { return !d.LessThan(minAmount) }),
		"float64_amount": amountRule(func(d decimal.Decimal) bool {
			return !math.IsInf(d.InexactFloat64(), 0)
		}),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

// validCategory checks the category against the entry's transaction type
func validCategory(fl validator.FieldLevel) bool {
	typ := fl.Parent().FieldByName("TransactionType").String()
	t, err := domain.ParseTransactionType(typ)
	if err != nil {
		return false
	}
	return domain.HasCategory(t, fl.Field().String())
}

func amountRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return ok(d)
	}
}

// FieldError is the first rule a single field failed
type FieldError struct {
	Field string
	Err   error
}

// ValidationErrors lists field errors in form order
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %v", fe.Field, fe.Err))
	}
	return "invalid transaction: " + strings.Join(parts, "; ")
}

// Field returns the error reported for field, or nil
func (v ValidationErrors) Field(field string) error {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Err
		}
	}
	return nil
}

// check validates e, or only the named struct fields when given
func check(e entry, fields ...string) ValidationErrors {
	var err error
	if len(fields) == 0 {
		err = validate.Struct(e)
	} else {
		err = validate.StructPartial(e, fields...)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "form", Err: err}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Err: fieldError(fe, e)})
	}
	return out
}

func fieldError(fe validator.FieldError, e entry) error {
	switch fe.Tag() {
	case "oneof":
		return domain.ErrInvalidTransactionType
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "category":
		return fmt.Errorf("%w: %q is not a %s category", ErrUnknownCategory, e.Category, strings.ToLower(e.TransactionType))
	case "decimal_amount":
		return errors.New("amount must be a number")
	case "positive_amount":
		return errors.New("amount must be positive")
	case "min_amount":
		return fmt.Errorf("amount must be at least %s", minAmount.StringFixed(2))
	case "float64_amount":
		return errors.New("amount is too large")
	case "max":
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	case "notblank":
		return errors.New("account is required")
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

func first(errs ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0].Err
}

func ValidateTransactionType(s string) error {
	return first(check(entry{TransactionType: s}, "TransactionType"))
}

func ValidateCategory(t domain.TransactionType, category string) error {
	return first(check(entry{TransactionType: t.String(), Category: strings.TrimSpace(category)}, "Category"))
}

func ValidateAmount(s string) error {
	return first(check(entry{Amount: strings.TrimSpace(s)}, "Amount"))
}

func ValidateDescription(s string) error {
	return first(check(entry{Description: strings.TrimSpace(s)}, "Description"))
}

func ValidateAccountNumber(s string) error {
	return first(check(entry{AccountNumber: s}, "AccountNumber"))
}
