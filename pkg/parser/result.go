package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ssargent/gs1kit/pkg/ai"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is matched by the error Require returns for an absent AI
var ErrNotFound = errors.New("AI not found")

type notFoundError string

func (e notFoundError) Error() string        { return "AI " + string(e) + " not found" }
func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

// Element is one decoded field. Pos is the byte offset of Raw in the payload.
type Element struct {
	Code  string
	Raw   string
	Value ai.Value
	Pos   int
}

// Result is the set of fields decoded from one payload, in encounter order.
// It is not modified after Parse returns.
type Result struct {
	elements []Element
	index    map[string]int
}

func newResult(size int) *Result {
	return &Result{
		elements: make([]Element, 0, size),
		index:    make(map[string]int, size),
	}
}

func (r *Result) add(e Element) {
	r.index[e.Code] = len(r.elements)
	r.elements = append(r.elements, e)
}

// Get returns the value of code
func (r *Result) Get(code string) (ai.Value, bool) {
	e, ok := r.Element(code)
	return e.Value, ok
}

// Element returns the decoded field for code
func (r *Result) Element(code string) (Element, bool) {
	i, ok := r.index[code]
	if !ok {
		return Element{}, false
	}
	return r.elements[i], true
}

// Contains reports whether code was present in the payload
func (r *Result) Contains(code string) bool {
	_, ok := r.index[code]
	return ok
}

// Require returns the value of code or an error matching ErrNotFound
func (r *Result) Require(code string) (ai.Value, error) {
	v, ok := r.Get(code)
	if !ok {
		return ai.Value{}, notFoundError(code)
	}
	return v, nil
}

// Len returns the number of decoded fields
func (r *Result) Len() int {
	return len(r.elements)
}

// Codes returns the AI codes in encounter order
func (r *Result) Codes() []string {
	codes := make([]string, len(r.elements))
	for i, e := range r.elements {
		codes[i] = e.Code
	}
	return codes
}

// Elements returns a copy of the decoded fields in encounter order
func (r *Result) Elements() []Element {
	return append([]Element(nil), r.elements...)
}

// AsMap returns a copy of the values keyed by AI code
func (r *Result) AsMap() map[string]ai.Value {
	m := make(map[string]ai.Value, len(r.elements))
	for _, e := range r.elements {
		m[e.Code] = e.Value
	}
	return m
}

// String renders the raw fields in parenthesis notation
func (r *Result) String() string {
	var sb strings.Builder
	for _, e := range r.elements {
		sb.WriteByte('(')
		sb.WriteString(e.Code)
		sb.WriteByte(')')
		sb.WriteString(e.Raw)
	}
	return sb.String()
}

// MarshalJSON renders the values as an object keyed by AI code, in encounter
// order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Code)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the values as a mapping keyed by AI code, in encounter
// order.
func (r *Result) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r.elements {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Code, Style: yaml.DoubleQuotedStyle}
		value := &yaml.Node{}
		if err := value.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
