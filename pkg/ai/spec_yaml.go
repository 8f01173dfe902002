package ai

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// specDoc is the YAML shape of a Spec. A spec declares either fixed or max
// (or neither, for an unbounded variable length), never both.
type specDoc struct {
	Code       string  `yaml:"code"`
	Title      string  `yaml:"title,omitempty"`
	Fixed      int     `yaml:"fixed,omitempty"`
	Max        int     `yaml:"max,omitempty"`
	CharSet    CharSet `yaml:"charset"`
	CheckDigit bool    `yaml:"check_digit,omitempty"`
	Decoder    Decoder `yaml:"decoder,omitempty"`
}

// MarshalYAML implements yaml.Marshaler
func (s Spec) MarshalYAML() (interface{}, error) {
	doc := specDoc{
		Code:       s.Code,
		Title:      s.Title,
		CharSet:    s.CharSet,
		CheckDigit: s.CheckDigit,
		Decoder:    s.Decoder,
	}
	if n, ok := s.Length.Size(); ok {
		doc.Fixed = n
	} else if max, ok := s.Length.Max(); ok {
		doc.Max = max
	}
	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	var doc specDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	if doc.Fixed != 0 && doc.Max != 0 {
		return fmt.Errorf("AI %s: fixed-length AI cannot declare max (line %d)", doc.Code, value.Line)
	}
	if doc.Fixed < 0 || doc.Max < 0 {
		return fmt.Errorf("AI %s: lengths must be positive (line %d)", doc.Code, value.Line)
	}

	length := Variable(doc.Max)
	if doc.Fixed > 0 {
		length = Fixed(doc.Fixed)
	}

	*s = Spec{
		Code:       doc.Code,
		Title:      doc.Title,
		Length:     length,
		CharSet:    doc.CharSet,
		CheckDigit: doc.CheckDigit,
		Decoder:    doc.Decoder,
	}
	return nil
}
