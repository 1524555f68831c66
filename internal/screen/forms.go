package screen

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/operator/actions"
)

const (
	MaxLoanAmount   = 100000
	DefaultLoanTerm = 12
	DefaultLoanRate = 4
)

var ErrNotAuthenticated = errors.New("no authenticated user")

// InputError is a form-level rejection carrying a localized message.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Processor runs mutating actions one at a time.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type Translator interface {
	T(key string, args ...interface{}) string
}

type Refresher interface {
	Refresh(trigger Trigger, names ...string)
}

// Forms validates user input for the mutating screens, submits it through
// the operator and reports the outcome as an alert.
type Forms struct {
	identity interface{ UserID() string }
	ops      Processor
	alerts   alert.Alerter
	tr       Translator
	screens  Refresher
	logger   *logrus.Logger
}

func NewForms(identity interface{ UserID() string }, ops Processor, alerts alert.Alerter, tr Translator, screens Refresher, logger *logrus.Logger) *Forms {
	return &Forms{
		identity: identity,
		ops:      ops,
		alerts:   alerts,
		tr:       tr,
		screens:  screens,
		logger:   logger,
	}
}

type TransferInput struct {
	SourceAccountID string
	// DestinationNumber is resolved to an id; DestinationAccountID is used
	// as is when the number is empty.
	DestinationNumber    string
	DestinationAccountID string
	Amount               string
	Concept              string
}

func (f *Forms) Transfer(ctx context.Context, in TransferInput) (gateway.Receipt, error) {
	owner, err := f.owner()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SourceAccountID) == "" || strings.TrimSpace(in.Amount) == "" {
		return nil, f.reject("selectAccountAndAmount")
	}
	if strings.TrimSpace(in.DestinationNumber) == "" && strings.TrimSpace(in.DestinationAccountID) == "" {
		return nil, f.reject("transferIncomplete")
	}
	amount, err := gateway.ParseAmount(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, f.reject("selectAccountAndAmount")
	}

	action := &actions.Transfer{
		Params: gateway.TransferParams{
			UserID:               owner,
			SourceAccountID:      in.SourceAccountID,
			DestinationAccountID: in.DestinationAccountID,
			Amount:               amount,
			Concept:              strings.TrimSpace(in.Concept),
		},
		DestinationNumber: strings.TrimSpace(in.DestinationNumber),
	}
	if err := f.submit(ctx, action); err != nil {
		return nil, err
	}

	f.alerts.Alert(f.tr.T("transferSuccess"), "")
	f.screens.Refresh(TriggerMutation, Dashboard, Accounts, Movements)
	return action.Receipt, nil
}

type LoanRequestInput struct {
	DepositAccountID string
	Name             string
	Amount           string
	Term             string
}

func (f *Forms) RequestLoan(ctx context.Context, in LoanRequestInput) (gateway.LoanRequestResult, error) {
	owner, err := f.owner()
	if err != nil {
		return gateway.LoanRequestResult{}, err
	}
	if strings.TrimSpace(in.DepositAccountID) == "" {
		return gateway.LoanRequestResult{}, f.reject("selectAccountAndAmount")
	}
	amount, err := gateway.ParseAmount(in.Amount)
	if err != nil || !amount.IsPositive() {
		return gateway.LoanRequestResult{}, f.reject("loanAmountInvalid")
	}
	if amount.GreaterThan(decimal.NewFromInt(MaxLoanAmount)) {
		return gateway.LoanRequestResult{}, f.reject("loanAmountTooHigh")
	}
	term, err := strconv.Atoi(strings.TrimSpace(in.Term))
	if err != nil {
		term = DefaultLoanTerm
	}

	action := &actions.RequestLoan{Params: gateway.LoanRequestParams{
		UserID:           owner,
		DepositAccountID: in.DepositAccountID,
		Name:             strings.TrimSpace(in.Name),
		Principal:        amount,
		InterestRate:     decimal.NewFromInt(DefaultLoanRate),
		TermMonths:       term,
	}}
	if err := f.submit(ctx, action); err != nil {
		return gateway.LoanRequestResult{}, err
	}

	msg := f.tr.T("loanRequested")
	if action.Result.Installment.Valid {
		msg += "\n" + f.tr.T("monthlyInstallment", action.Result.Installment.Decimal.StringFixed(2))
	}
	f.alerts.Alert(f.tr.T("requestLoanSuccess"), msg)
	f.screens.Refresh(TriggerMutation, Dashboard, Accounts, Loans, Movements)
	return action.Result, nil
}

type LoanPaymentInput struct {
	LoanID          string
	SourceAccountID string
	Amount          string
	// Interest is optional and defaults to zero.
	Interest string
}

func (f *Forms) PayLoan(ctx context.Context, in LoanPaymentInput) (gateway.Receipt, error) {
	owner, err := f.owner()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SourceAccountID) == "" {
		return nil, f.reject("selectAccountAndAmount")
	}
	amount, err := gateway.ParseAmount(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, f.reject("paymentAmountInvalid")
	}
	interest := decimal.Zero
	if strings.TrimSpace(in.Interest) != "" {
		interest, err = gateway.ParseAmount(in.Interest)
		if err != nil || interest.IsNegative() {
			return nil, f.reject("paymentAmountInvalid")
		}
	}

	action := &actions.PayLoan{Params: gateway.LoanPaymentParams{
		UserID:          owner,
		LoanID:          in.LoanID,
		SourceAccountID: in.SourceAccountID,
		Principal:       amount,
		Interest:        interest,
	}}
	if err := f.submit(ctx, action); err != nil {
		return nil, err
	}

	f.alerts.Alert(f.tr.T("loanPaymentSuccess"), f.tr.T("loanPaymentSuccessBody"))
	f.screens.Refresh(TriggerMutation, Dashboard, Accounts, Loans, Payments, Movements)
	return action.Receipt, nil
}

type NewAccountInput struct {
	Name     string
	Type     string
	Currency string
}

func (f *Forms) CreateAccount(ctx context.Context, in NewAccountInput) (gateway.Account, error) {
	owner, err := f.owner()
	if err != nil {
		return gateway.Account{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return gateway.Account{}, f.reject("accountNameRequired")
	}
	accountType := gateway.AccountType(strings.TrimSpace(in.Type))
	if accountType == "" {
		accountType = gateway.AccountTypeSavings
	}

	action := &actions.CreateAccount{Params: gateway.CreateAccountParams{
		UserID:   owner,
		Name:     in.Name,
		Type:     accountType,
		Currency: strings.TrimSpace(in.Currency),
	}}
	if err := f.submit(ctx, action); err != nil {
		return gateway.Account{}, err
	}

	f.alerts.Alert(f.tr.T("accountCreatedTitle"), f.tr.T("accountCreatedMessage", action.Account.Number))
	f.screens.Refresh(TriggerMutation, Dashboard, Accounts)
	return action.Account, nil
}

func (f *Forms) owner() (string, error) {
	owner := f.identity.UserID()
	if owner == "" {
		f.alerts.Alert(f.tr.T("errorTitle"), f.tr.T("noAuthenticatedUser"))
		return "", ErrNotAuthenticated
	}
	return owner, nil
}

func (f *Forms) reject(key string) error {
	msg := f.tr.T(key)
	f.alerts.Alert(f.tr.T("errorTitle"), msg)
	return &InputError{Message: msg}
}

func (f *Forms) submit(ctx context.Context, action actions.IAction) error {
	if err := f.ops.Process(ctx, action); err != nil {
		f.logger.WithError(err).WithField("action", action.Name()).Warn("Screen.Forms.submit")
		f.alerts.Alert(f.tr.T("errorTitle"), err.Error())
		return err
	}
	return nil
}
