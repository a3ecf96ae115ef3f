// Package routes assembles the v1 API.
package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/customer-form/internal/http/v1/customer"
	"github.com/janisto/customer-form/internal/platform/auth"
	customersvc "github.com/janisto/customer-form/internal/service/customer"
)

// Register wires every v1 operation into api. Operations declaring
// bearerAuth are authenticated with verifier.
func Register(api huma.API, verifier auth.Verifier, customerService customersvc.Service) {
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	customer.Register(api, customerService, apiPrefix(api))
}

// apiPrefix returns the path of the first server URL, e.g. "/v1".
func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
