package exchange

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/banca-client/internal/exchange"
	"github.com/carson-networks/banca-client/internal/gateway"
)

// Exchange is the API model for the exchange screen.
type Exchange struct {
	Rate  string `json:"rate" doc:"HNL per USD"`
	Live  bool   `json:"live" doc:"False while the fallback rate is in use"`
	Line  string `json:"line" doc:"Localized rate line"`
	ToHNL string `json:"toHnl,omitempty" doc:"The usd amount in HNL"`
	ToUSD string `json:"toUsd,omitempty" doc:"The hnl amount in USD"`
}

type ExchangeInput struct {
	USD string `query:"usd" doc:"Dollar amount to convert"`
	HNL string `query:"hnl" doc:"Lempira amount to convert"`
}

type ExchangeOutput struct {
	Body Exchange
}

type board interface {
	Refresh(ctx context.Context) bool
	Convert(usd, hnl decimal.NullDecimal) exchange.Conversion
}

type translator interface {
	T(key string, args ...interface{}) string
}

// Handler serves /v1/exchange.
type Handler struct {
	Board board
	Tr    translator
}

func NewHandler(b board, tr translator) *Handler {
	return &Handler{Board: b, Tr: tr}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-exchange",
		Method:      http.MethodGet,
		Path:        "/v1/exchange",
		Summary:     "Current rate and conversions",
		Tags:        []string{"Exchange"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-exchange",
		Method:      http.MethodPost,
		Path:        "/v1/exchange/refresh",
		Summary:     "Look the rate up again",
		Description: "Keeps the previous rate when the lookup fails.",
		Tags:        []string{"Exchange"},
	}, h.refresh)
}

func parse(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := gateway.ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (h *Handler) output(c exchange.Conversion) *ExchangeOutput {
	out := &ExchangeOutput{Body: Exchange{
		Rate: c.Rate.StringFixed(2),
		Live: c.Live,
		Line: h.Tr.T("exchangeRateLine", c.Rate.StringFixed(2)),
	}}
	if c.ToHNL.Valid {
		out.Body.ToHNL = c.ToHNL.Decimal.StringFixed(2)
	}
	if c.ToUSD.Valid {
		out.Body.ToUSD = c.ToUSD.Decimal.StringFixed(2)
	}
	return out
}

func (h *Handler) get(_ context.Context, input *ExchangeInput) (*ExchangeOutput, error) {
	usd, err := parse(input.USD)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid usd amount", err)
	}
	hnl, err := parse(input.HNL)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid hnl amount", err)
	}
	return h.output(h.Board.Convert(usd, hnl)), nil
}

func (h *Handler) refresh(ctx context.Context, _ *struct{}) (*ExchangeOutput, error) {
	h.Board.Refresh(ctx)
	return h.output(h.Board.Convert(decimal.NullDecimal{}, decimal.NullDecimal{})), nil
}
