// Package submission is the boundary between the pipeline editor and the validator.
// It decodes submitted graphs, rejects structurally malformed ones before any
// cycle detection runs, and builds the response the editor displays.
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/leapflow/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRequest is returned when a body cannot be decoded or lacks required fields.
var ErrInvalidRequest = errors.New("invalid request")

// Request is a submitted pipeline graph.
//
// Both lists are required on the wire but may be empty. Fields the editor adds
// for presentation (width, selected, animated, ...) are ignored.
type Request struct {
	Nodes []core.Node `json:"nodes" yaml:"nodes" validate:"required,dive"`
	Edges []core.Edge `json:"edges" yaml:"edges" validate:"required,dive"`
}

// Graph returns the request as a core.Graph.
func (r *Request) Graph() core.Graph {
	return core.Graph{Nodes: r.Nodes, Edges: r.Edges}
}

// requestValidate is the validator instance for submitted graphs.
// Field names in errors use the json tag so they match what the editor sent.
var requestValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks required fields.
func (r *Request) Validate() error {
	err := requestValidate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the leading "Request." from the namespace
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

// Decode reads a JSON request body and validates its required fields.
func Decode(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return Request{}, fmt.Errorf("%w: empty body", ErrInvalidRequest)
		}
		return Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// DecodeFile reads a pipeline file. Files ending in .yaml or .yml are parsed as
// YAML; anything else as JSON.
func DecodeFile(path string) (Request, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the CLI user
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var req Request
		if err := yaml.NewDecoder(f).Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return Request{}, fmt.Errorf("%w: %s is empty", ErrInvalidRequest, path)
			}
			return Request{}, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, path, err)
		}
		if err := req.Validate(); err != nil {
			return Request{}, err
		}
		return req, nil
	default:
		req, err := Decode(f)
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", path, err)
		}
		return req, nil
	}
}
