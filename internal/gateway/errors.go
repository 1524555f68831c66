package gateway

import (
	"errors"
)

// Precondition failures, one per violated rule.
var (
	ErrMissingUser          = errors.New("user id is required")
	ErrMissingAccount       = errors.New("account id is required")
	ErrMissingSource        = errors.New("source account id is required")
	ErrMissingDestination   = errors.New("destination account id is required")
	ErrSameAccount          = errors.New("source and destination cannot be the same account")
	ErrNonPositiveAmount    = errors.New("amount must be a number greater than 0")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrNonPositiveTerm      = errors.New("term must be greater than 0")
	ErrMissingLoan          = errors.New("loan id is required")
	ErrMissingAccountNumber = errors.New("destination account number is required")
	ErrMissingAccountName   = errors.New("account name is required")
	ErrInvalidAccountType   = errors.New("account type must be ahorros or corriente")

	ErrAccountNotFound = errors.New("destination account not found")
	ErrNotConfigured   = errors.New("backend is not configured")
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotConfigured ErrorKind = "not_configured"
	KindNotFound      ErrorKind = "not_found"
	KindRemote        ErrorKind = "remote"
)

// Error classifies a failure of a mutating operation. Its message is the
// underlying message unchanged so backend text reaches the user verbatim.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind == kind
	}
	return false
}

func validationError(op string, err error) error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

func backendError(op string, err error) error {
	kind := KindRemote
	switch {
	case errors.Is(err, ErrNotConfigured):
		kind = KindNotConfigured
	case errors.Is(err, ErrAccountNotFound):
		kind = KindNotFound
	}
	return &Error{Op: op, Kind: kind, Err: err}
}
