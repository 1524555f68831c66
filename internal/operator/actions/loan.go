package actions

import (
	"context"

	"github.com/carson-networks/banca-client/internal/gateway"
)

type RequestLoan struct {
	Params gateway.LoanRequestParams

	Result gateway.LoanRequestResult
}

func (r *RequestLoan) Name() string {
	return "RequestLoan"
}

func (r *RequestLoan) Perform(ctx context.Context, gw *gateway.Gateway) error {
	result, err := gw.RequestLoan(ctx, r.Params)
	if err != nil {
		return err
	}

	r.Result = result
	return nil
}

type PayLoan struct {
	Params gateway.LoanPaymentParams

	Receipt gateway.Receipt
}

func (p *PayLoan) Name() string {
	return "PayLoan"
}

func (p *PayLoan) Perform(ctx context.Context, gw *gateway.Gateway) error {
	receipt, err := gw.PayLoan(ctx, p.Params)
	if err != nil {
		return err
	}

	p.Receipt = receipt
	return nil
}
