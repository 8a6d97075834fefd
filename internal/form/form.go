// Package form implements the transaction entry form: its state, the
// field-level validation rules, the category list derived from the selected
// transaction type, and submission of the normalized payload.
//
// A Form is driven from a single goroutine and is not safe for concurrent use.
package form

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"transaction-entry/internal/domain"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

var (
	ErrDisabled        = errors.New("form is disabled")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoService       = errors.New("form has no service")
)

// Service is the remote side of the form
type Service interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateTransaction(ctx context.Context, tx domain.Transaction) error
}

type Config struct {
	// OnComplete receives the payload after the server accepted it
	OnComplete func(domain.Transaction)
	Disabled   bool
	Logger     *log.Logger
}

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State holds the raw field values as entered
type State struct {
	TransactionType domain.TransactionType
	Category        string
	Amount          string
	Description     string
	AccountNumber   string
}

func defaultState() State {
	return State{TransactionType: domain.Income}
}

type Form struct {
	svc        Service
	onComplete func(domain.Transaction)
	disabled   bool
	log        *log.Logger

	state    State
	options  []domain.CategoryOption
	accounts []domain.Account
	status   Status
}

// New builds a form backed by svc. svc is required: without it Mount only
// logs and Submit returns ErrNoService.
func New(svc Service, cfg Config) *Form {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "transaction-form"})
	}

	f := &Form{
		svc:        svc,
		onComplete: cfg.OnComplete,
		disabled:   cfg.Disabled,
		log:        logger,
	}
	f.Reset()
	return f
}

// Mount loads the account list. A failed fetch is logged and leaves the list empty.
func (f *Form) Mount(ctx context.Context) {
	if f.svc == nil {
		f.log.Error("failed to fetch accounts", "err", ErrNoService)
		return
	}
	accounts, err := f.svc.ListAccounts(ctx)
	if err != nil {
		f.log.Error("failed to fetch accounts", "err", err)
		f.accounts = nil
		return
	}
	f.accounts = accounts
	f.log.Debug("accounts loaded", "count", len(accounts))
}

func (f *Form) Accounts() []domain.Account {
	out := make([]domain.Account, len(f.accounts))
	copy(out, f.accounts)
	return out
}

func (f *Form) State() State { return f.state }

func (f *Form) Status() Status { return f.status }

func (f *Form) Disabled() bool { return f.disabled }

func (f *Form) SetDisabled(disabled bool) { f.disabled = disabled }

// CategoryOptions returns the categories allowed for the current transaction type
func (f *Form) CategoryOptions() []domain.CategoryOption {
	out := make([]domain.CategoryOption, len(f.options))
	copy(out, f.options)
	return out
}

// Reset discards entered values and returns to the defaults
func (f *Form) Reset() {
	f.state = defaultState()
	f.options = domain.Categories(f.state.TransactionType)
	f.status = StatusIdle
}

// SetTransactionType switches the type, recomputes the category options and
// clears the selected category.
func (f *Form) SetTransactionType(t domain.TransactionType) error {
	if f.disabled {
		return ErrDisabled
	}
	if !t.Valid() {
		return domain.ErrInvalidTransactionType
	}
	f.state.TransactionType = t
	f.state.Category = ""
	f.options = domain.Categories(t)
	return nil
}

// SetCategory accepts an empty value or one of CategoryOptions
func (f *Form) SetCategory(category string) error {
	if f.disabled {
		return ErrDisabled
	}
	category = strings.TrimSpace(category)
	if category != "" && !domain.HasCategory(f.state.TransactionType, category) {
		return ErrUnknownCategory
	}
	f.state.Category = category
	return nil
}

func (f *Form) SetAmount(amount string) error {
	if f.disabled {
		return ErrDisabled
	}
	f.state.Amount = amount
	return nil
}

func (f *Form) SetDescription(description string) error {
	if f.disabled {
		return ErrDisabled
	}
	f.state.Description = description
	return nil
}

func (f *Form) SetAccountNumber(number string) error {
	if f.disabled {
		return ErrDisabled
	}
	f.state.AccountNumber = number
	return nil
}

// Validate checks every field and reports the first failing rule of each.
// It returns nil when the form can be submitted.
func (f *Form) Validate() error {
	s := f.state
	errs := check(entry{
		TransactionType: s.TransactionType.String(),
		Category:        strings.TrimSpace(s.Category),
		Amount:          strings.TrimSpace(s.Amount),
		Description:     strings.TrimSpace(s.Description),
		AccountNumber:   s.AccountNumber,
	})
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Normalize converts valid state into the payload sent to the server
func (f *Form) Normalize() (domain.Transaction, error) {
	if err := f.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.state.Amount))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to parse amount: %w", err)
	}

	return domain.Transaction{
		AccountNumber:   strings.TrimSpace(f.state.AccountNumber),
		Amount:          amount.InexactFloat64(),
		TransactionType: strings.ToLower(f.state.TransactionType.String()),
		Category:        strings.ToLower(f.state.Category),
		Description:     strings.TrimSpace(f.state.Description),
	}, nil
}

// Submit validates and sends the transaction. Validation failures are
// returned as ValidationErrors, the status goes back to StatusIdle and
// nothing is sent. A failed request is logged, the status becomes
// StatusFailed and the entered values are kept; Submit still returns nil in
// that case.
func (f *Form) Submit(ctx context.Context) error {
	if f.disabled {
		return ErrDisabled
	}
	if f.svc == nil {
		return ErrNoService
	}

	tx, err := f.Normalize()
	if err != nil {
		f.status = StatusIdle
		return err
	}

	f.status = StatusSubmitting
	if err := f.svc.CreateTransaction(ctx, tx); err != nil {
		f.status = StatusFailed
		f.log.Error("failed to submit transaction", "err", err,
			"account_number", tx.AccountNumber, "type", tx.TransactionType)
		return nil
	}

	f.status = StatusSucceeded
	if f.onComplete != nil {
		f.onComplete(tx)
	}
	return nil
}
