package locale

import (
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var messages = map[Language]map[string]string{
	Spanish: {
		"welcome":                "Hola",
		"language":               "Idioma",
		"exchangeRate":           "Tasa de cambio",
		"exchangeRateLine":       "1 USD = %s HNL",
		"errorTitle":             "Error",
		"requiredField":          "Campo requerido",
		"noAuthenticatedUser":    "No hay usuario autenticado.",
		"invalidCredentials":     "Credenciales inválidas",
		"loginFailed":            "No se pudo iniciar sesión",
		"selectAccountAndAmount": "Selecciona cuenta y monto.",
		"transferIncomplete":     "Completa cuenta destino y monto.",
		"transferSuccess":        "Transferencia realizada",
		"loanAmountInvalid":      "Ingresa un monto de préstamo válido.",
		"loanAmountTooHigh":      "El monto del préstamo no puede exceder 100,000.",
		"requestLoanSuccess":     "Préstamo solicitado",
		"loanRequested":          "Préstamo solicitado correctamente",
		"monthlyInstallment":     "Cuota mensual: L %s",
		"loanPaymentSuccess":     "Pago realizado",
		"loanPaymentSuccessBody": "El pago se realizó correctamente.",
		"paymentAmountInvalid":   "Ingresa un monto de pago válido.",
		"accountNameRequired":    "Ingresa un nombre para la cuenta.",
		"accountCreatedTitle":    "Cuenta creada",
		"accountCreatedMessage":  "Tu cuenta %s fue creada.",
		"accountsLoadError":      "No se pudieron cargar las cuentas.",
		"noData":                 "Sin datos",
	},
	English: {
		"welcome":                "Hello",
		"language":               "Language",
		"exchangeRate":           "Exchange rate",
		"exchangeRateLine":       "1 USD = %s HNL",
		"errorTitle":             "Error",
		"requiredField":          "Required field",
		"noAuthenticatedUser":    "No authenticated user.",
		"invalidCredentials":     "Invalid credentials",
		"loginFailed":            "Could not sign in",
		"selectAccountAndAmount": "Select an account and amount.",
		"transferIncomplete":     "Fill in destination account and amount.",
		"transferSuccess":        "Transfer completed",
		"loanAmountInvalid":      "Enter a valid loan amount.",
		"loanAmountTooHigh":      "Loan amount cannot exceed 100,000.",
		"requestLoanSuccess":     "Loan requested",
		"loanRequested":          "Loan requested successfully",
		"monthlyInstallment":     "Monthly installment: L %s",
		"loanPaymentSuccess":     "Payment completed",
		"loanPaymentSuccessBody": "The payment was completed successfully.",
		"paymentAmountInvalid":   "Enter a valid payment amount.",
		"accountNameRequired":    "Enter a name for the account.",
		"accountCreatedTitle":    "Account created",
		"accountCreatedMessage":  "Your account %s was created.",
		"accountsLoadError":      "Accounts could not be loaded.",
	},
}

// Translator resolves message keys per language, falling back to the default
// language and finally to the key itself.
type Translator struct {
	printers map[Language]*message.Printer
}

func NewTranslator() *Translator {
	builder := catalog.NewBuilder(catalog.Fallback(Default.Tag()))
	for lng, table := range messages {
		for key, msg := range table {
			_ = builder.SetString(lng.Tag(), key, msg)
		}
	}

	printers := make(map[Language]*message.Printer, len(messages))
	for _, lng := range Supported() {
		printers[lng] = message.NewPrinter(lng.Tag(), message.Catalog(builder))
	}
	return &Translator{printers: printers}
}

func (t *Translator) Translate(lng Language, key string, args ...interface{}) string {
	if _, ok := messages[lng][key]; ok {
		return t.printers[lng].Sprintf(message.Key(key, key), args...)
	}
	if _, ok := messages[Default][key]; ok {
		return t.printers[Default].Sprintf(message.Key(key, key), args...)
	}
	return key
}

// Has reports whether lng defines key without falling back.
func (t *Translator) Has(lng Language, key string) bool {
	_, ok := messages[lng][key]
	return ok
}
