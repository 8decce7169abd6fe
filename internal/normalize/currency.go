package normalize

import (
	"errors"
	"strings"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
)

// ErrUnknownCurrency is wrapped by Currency when a price unit matches no
// supported code. The returned error is also a validation error.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency resolves a price unit to an ISO 4217 code. An exact match wins;
// otherwise the first supported code contained in the token is used, so
// "EURO" resolves to EUR. Anything else fails.
func Currency(raw string) (domain.Currency, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if c := domain.Currency(token); c.Valid() {
		return c, nil
	}
	if token != "" {
		for _, c := range domain.Currencies {
			if strings.Contains(token, string(c)) {
				return c, nil
			}
		}
	}
	return "", domainerrors.Wrapf(ErrUnknownCurrency, domainerrors.CodeValidation, "unknown currency %q", raw).
		WithDetails(map[string]string{"currency": raw})
}
