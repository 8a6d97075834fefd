package form

import (
	"context"
	"fmt"

	"transaction-entry/internal/domain"

	"github.com/charmbracelet/huh"
)

// Prompt renders the form in the terminal and applies the entered values.
// It returns huh.ErrUserAborted if the user cancels.
func (f *Form) Prompt(ctx context.Context) error {
	if f.disabled {
		return ErrDisabled
	}

	typ := f.state.TransactionType.String()
	category := f.state.Category
	amount := f.state.Amount
	description := f.state.Description
	accountNumber := f.state.AccountNumber

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transaction type").
				Options(typeOptions()...).
				Value(&typ).
				Validate(ValidateTransactionType),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(typ)
				}, &typ).
				Value(&category).
				Validate(func(c string) error {
					t, err := domain.ParseTransactionType(typ)
					if err != nil {
						return err
					}
					return ValidateCategory(t, c)
				}),

			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&amount).
				Validate(ValidateAmount),

			huh.NewInput().
				Title("Description (Optional)").
				Placeholder("What was it for?").
				CharLimit(MaxDescriptionLength).
				Value(&description).
				Validate(ValidateDescription),

			f.accountField(&accountNumber),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	t, err := domain.ParseTransactionType(typ)
	if err != nil {
		return err
	}
	if err := f.SetTransactionType(t); err != nil {
		return err
	}
	if err := f.SetCategory(category); err != nil {
		return err
	}
	if err := f.SetAmount(amount); err != nil {
		return err
	}
	if err := f.SetDescription(description); err != nil {
		return err
	}
	return f.SetAccountNumber(accountNumber)
}

// accountField is a selector over the loaded accounts, or a plain input when none loaded
func (f *Form) accountField(value *string) huh.Field {
	if len(f.accounts) == 0 {
		return huh.NewInput().
			Title("Account number").
			Description("No accounts could be loaded").
			Value(value).
			Validate(ValidateAccountNumber)
	}

	return huh.NewSelect[string]().
		Title("Account").
		Options(accountOptions(f.accounts)...).
		Value(value).
		Validate(ValidateAccountNumber)
}

func typeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(domain.Income.String(), domain.Income.String()),
		huh.NewOption(domain.Expense.String(), domain.Expense.String()),
	}
}

func categoryOptions(typ string) []huh.Option[string] {
	t, err := domain.ParseTransactionType(typ)
	if err != nil {
		return nil
	}
	cats := domain.Categories(t)
	opts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Label, c.Value))
	}
	return opts
}

func accountOptions(accounts []domain.Account) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", a.Name, a.Number), a.Number))
	}
	return opts
}
