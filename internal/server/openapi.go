package server

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

// newRequestValidator loads the embedded API document and builds a router
// that can match incoming requests against it.
func newRequestValidator(ctx context.Context) (routers.Router, error) {
	loader := &openapi3.Loader{Context: ctx}

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("load api document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api document: %w", err)
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}
	return router, nil
}

// validateRequest checks an incoming request against the API document.
// The request body is restored after validation so handlers can decode it.
func validateRequest(ctx context.Context, router routers.Router, r *http.Request) error {
	route, pathParams, err := router.FindRoute(r)
	if err != nil {
		return err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
	}
	return openapi3filter.ValidateRequest(ctx, input)
}
