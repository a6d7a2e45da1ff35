package context

import (
	"github.com/labstack/echo/v4"

	"accounts/internal/domain/entity"
)

// KeyRequestor is the key for storing the authenticated requestor in echo.Context.
const KeyRequestor ContextKey = "requestor"

// SetRequestor stores the identity extracted from the access token.
func SetRequestor(c echo.Context, requestor entity.Requestor) {
	c.Set(string(KeyRequestor), requestor)
}

// GetRequestor returns the authenticated requestor. ok is false when the
// request did not pass through the auth middleware.
func GetRequestor(c echo.Context) (requestor entity.Requestor, ok bool) {
	requestor, ok = c.Get(string(KeyRequestor)).(entity.Requestor)

	return requestor, ok
}
