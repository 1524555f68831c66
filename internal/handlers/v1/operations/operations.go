package operations

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/handlers/v1/problem"
	"github.com/carson-networks/banca-client/internal/logging"
	"github.com/carson-networks/banca-client/internal/screen"
)

// Amounts are strings so that either "." or "," can be used as the decimal
// separator.

type CreateAccountInput struct {
	Body struct {
		Name     string `json:"name" doc:"Account name"`
		Type     string `json:"type,omitempty" enum:"ahorros,corriente" doc:"Account type, defaults to ahorros"`
		Currency string `json:"currency,omitempty" doc:"Currency code, defaults to HNL"`
	}
}

type CreateAccountOutput struct {
	Status int
	Body   gateway.Account
}

type TransferInput struct {
	Body struct {
		SourceAccountID      string `json:"sourceAccountId" doc:"Account to debit"`
		DestinationNumber    string `json:"destinationNumber,omitempty" doc:"Destination account number"`
		DestinationAccountID string `json:"destinationAccountId,omitempty" doc:"Destination account id, used when no number is given"`
		Amount               string `json:"amount" doc:"Amount, e.g. '1500.50' or '1500,50'"`
		Concept              string `json:"concept,omitempty" doc:"Transfer concept"`
	}
}

type ReceiptOutput struct {
	Body struct {
		Receipt gateway.Receipt `json:"receipt" doc:"First row returned by the backend, null when none"`
	}
}

type LoanRequestInput struct {
	Body struct {
		DepositAccountID string `json:"depositAccountId" doc:"Account that receives the principal"`
		Name             string `json:"name,omitempty" doc:"Loan name"`
		Amount           string `json:"amount" doc:"Principal, at most 100000"`
		Term             string `json:"term,omitempty" doc:"Term in months, defaults to 12"`
	}
}

type LoanRequestOutput struct {
	Status int
	Body   gateway.LoanRequestResult
}

type LoanPaymentInput struct {
	LoanID string `path:"loanID" doc:"Loan to pay"`
	Body   struct {
		SourceAccountID string `json:"sourceAccountId" doc:"Account to debit"`
		Amount          string `json:"amount" doc:"Principal amount"`
		Interest        string `json:"interest,omitempty" doc:"Interest amount, defaults to 0"`
	}
}

type forms interface {
	CreateAccount(ctx context.Context, in screen.NewAccountInput) (gateway.Account, error)
	Transfer(ctx context.Context, in screen.TransferInput) (gateway.Receipt, error)
	RequestLoan(ctx context.Context, in screen.LoanRequestInput) (gateway.LoanRequestResult, error)
	PayLoan(ctx context.Context, in screen.LoanPaymentInput) (gateway.Receipt, error)
}

// Handler serves the mutating endpoints.
type Handler struct {
	Forms forms
}

func NewHandler(f forms) *Handler {
	return &Handler{Forms: f}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts",
		Summary:     "Open a new account",
		Tags:        []string{"Operations"},
	}, h.createAccount)

	huma.Register(api, huma.Operation{
		OperationID: "transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfers",
		Summary:     "Transfer between accounts",
		Tags:        []string{"Operations"},
	}, h.transfer)

	huma.Register(api, huma.Operation{
		OperationID: "request-loan",
		Method:      http.MethodPost,
		Path:        "/v1/loans",
		Summary:     "Request a personal loan",
		Tags:        []string{"Operations"},
	}, h.requestLoan)

	huma.Register(api, huma.Operation{
		OperationID: "pay-loan",
		Method:      http.MethodPost,
		Path:        "/v1/loans/{loanID}/payments",
		Summary:     "Pay towards a loan",
		Tags:        []string{"Operations"},
	}, h.payLoan)
}

func timed(ctx context.Context, name string) func() {
	if logData := logging.GetLogData(ctx); logData != nil {
		return logData.AddTiming(name)
	}
	return func() {}
}

func (h *Handler) createAccount(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	stop := timed(ctx, "createAccountMs")
	account, err := h.Forms.CreateAccount(ctx, screen.NewAccountInput{
		Name:     input.Body.Name,
		Type:     input.Body.Type,
		Currency: input.Body.Currency,
	})
	stop()
	if err != nil {
		return nil, problem.From(err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", account.ID)
	}
	return &CreateAccountOutput{Status: http.StatusCreated, Body: account}, nil
}

func (h *Handler) transfer(ctx context.Context, input *TransferInput) (*ReceiptOutput, error) {
	stop := timed(ctx, "transferMs")
	receipt, err := h.Forms.Transfer(ctx, screen.TransferInput{
		SourceAccountID:      input.Body.SourceAccountID,
		DestinationNumber:    input.Body.DestinationNumber,
		DestinationAccountID: input.Body.DestinationAccountID,
		Amount:               input.Body.Amount,
		Concept:              input.Body.Concept,
	})
	stop()
	if err != nil {
		return nil, problem.From(err)
	}

	out := &ReceiptOutput{}
	out.Body.Receipt = receipt
	return out, nil
}

func (h *Handler) requestLoan(ctx context.Context, input *LoanRequestInput) (*LoanRequestOutput, error) {
	stop := timed(ctx, "requestLoanMs")
	result, err := h.Forms.RequestLoan(ctx, screen.LoanRequestInput{
		DepositAccountID: input.Body.DepositAccountID,
		Name:             input.Body.Name,
		Amount:           input.Body.Amount,
		Term:             input.Body.Term,
	})
	stop()
	if err != nil {
		return nil, problem.From(err)
	}
	return &LoanRequestOutput{Status: http.StatusCreated, Body: result}, nil
}

func (h *Handler) payLoan(ctx context.Context, input *LoanPaymentInput) (*ReceiptOutput, error) {
	stop := timed(ctx, "payLoanMs")
	receipt, err := h.Forms.PayLoan(ctx, screen.LoanPaymentInput{
		LoanID:          input.LoanID,
		SourceAccountID: input.Body.SourceAccountID,
		Amount:          input.Body.Amount,
		Interest:        input.Body.Interest,
	})
	stop()
	if err != nil {
		return nil, problem.From(err)
	}

	out := &ReceiptOutput{}
	out.Body.Receipt = receipt
	return out, nil
}
