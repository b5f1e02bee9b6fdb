// Package contract holds the OpenAPI description of the backend routes the
// console calls and validates live responses against it.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yaml
var document []byte

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Load parses and validates the embedded OpenAPI document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("failed to load backend contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid backend contract: %w", err)
	}
	return doc, nil
}

// Operation is one method and path template in the contract.
type Operation struct {
	Method string
	Path   string
	ID     string
}

// String returns "METHOD /path".
func (o Operation) String() string {
	return o.Method + " " + o.Path
}

// Operations lists every operation in doc, sorted by path then method.
func Operations(doc *openapi3.T) []Operation {
	var ops []Operation
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{Method: strings.ToUpper(method), Path: path, ID: op.OperationID})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

// Validator checks backend responses against the contract.
type Validator struct {
	router   routers.Router
	basePath string
}

// NewValidator builds a Validator for doc. basePath is the path component of
// the backend base URL and is stripped before route lookup.
func NewValidator(doc *openapi3.T, basePath string) (*Validator, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build contract router: %w", err)
	}
	return &Validator{router: router, basePath: strings.TrimSuffix(basePath, "/")}, nil
}

// ValidateResponse reports whether resp and its already-read body match the
// documented response for req. Requests to undocumented routes fail.
func (v *Validator) ValidateResponse(req *http.Request, resp *http.Response, body []byte) error {
	lookup := req
	if v.basePath != "" {
		lookup = req.Clone(req.Context())
		lookup.URL.Path = strings.TrimPrefix(req.URL.Path, v.basePath)
		lookup.URL.RawPath = ""
	}

	route, params, err := v.router.FindRoute(lookup)
	if err != nil {
		return fmt.Errorf("%s %s is not in the backend contract: %w", req.Method, lookup.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    lookup,
			PathParams: params,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}
	if err := openapi3filter.ValidateResponse(req.Context(), input); err != nil {
		return fmt.Errorf("%s %s status %d: %w", req.Method, route.Path, resp.StatusCode, err)
	}
	return nil
}

// NewStrictValidator loads the embedded contract and returns a Validator.
func NewStrictValidator(ctx context.Context, basePath string) (*Validator, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewValidator(doc, basePath)
}
