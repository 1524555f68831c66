package locale

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/locale"
)

// Locale is the API model for the active language.
type Locale struct {
	Language  string   `json:"language" doc:"Active language code"`
	Supported []string `json:"supported" readOnly:"true" doc:"Supported language codes"`
}

type LocaleOutput struct {
	Body Locale
}

type ChangeLocaleInput struct {
	Body struct {
		Language string `json:"language" minLength:"2" doc:"Language code to activate"`
	}
}

type TranslationInput struct {
	Key  string   `path:"key" doc:"Message key"`
	Args []string `query:"arg" doc:"Positional arguments for the message"`
}

type TranslationOutput struct {
	Body struct {
		Language string `json:"language"`
		Key      string `json:"key"`
		Text     string `json:"text"`
	}
}

type localeStore interface {
	Language() locale.Language
	ChangeLanguage(ctx context.Context, lng locale.Language) error
	T(key string, args ...interface{}) string
}

// Handler serves /v1/locale and /v1/translations.
type Handler struct {
	Locales localeStore
}

func NewHandler(locales localeStore) *Handler {
	return &Handler{Locales: locales}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-locale",
		Method:      http.MethodGet,
		Path:        "/v1/locale",
		Summary:     "Active language",
		Tags:        []string{"Locale"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "change-locale",
		Method:      http.MethodPut,
		Path:        "/v1/locale",
		Summary:     "Change the active language",
		Description: "Applies immediately; persistence happens in the background.",
		Tags:        []string{"Locale"},
	}, h.change)

	huma.Register(api, huma.Operation{
		OperationID: "translate",
		Method:      http.MethodGet,
		Path:        "/v1/translations/{key}",
		Summary:     "Translate a message key in the active language",
		Tags:        []string{"Locale"},
	}, h.translate)
}

func (h *Handler) output() *LocaleOutput {
	supported := locale.Supported()
	codes := make([]string, len(supported))
	for i, l := range supported {
		codes[i] = string(l)
	}
	return &LocaleOutput{Body: Locale{
		Language:  string(h.Locales.Language()),
		Supported: codes,
	}}
}

func (h *Handler) get(_ context.Context, _ *struct{}) (*LocaleOutput, error) {
	return h.output(), nil
}

func (h *Handler) change(ctx context.Context, input *ChangeLocaleInput) (*LocaleOutput, error) {
	lng, err := locale.ParseLanguage(input.Body.Language)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.Locales.ChangeLanguage(ctx, lng); err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error())
	}
	return h.output(), nil
}

func (h *Handler) translate(_ context.Context, input *TranslationInput) (*TranslationOutput, error) {
	args := make([]interface{}, len(input.Args))
	for i, a := range input.Args {
		args[i] = a
	}
	out := &TranslationOutput{}
	out.Body.Language = string(h.Locales.Language())
	out.Body.Key = input.Key
	out.Body.Text = h.Locales.T(input.Key, args...)
	return out, nil
}
