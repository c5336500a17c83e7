package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of an ordered mapping.
type Field struct {
	Key   string
	Value string
}

// Fields is a string mapping that keeps insertion order and encodes as a JSON object.
type Fields []Field

func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Set replaces the value of an existing key in place or appends a new pair.
func (f *Fields) Set(key, value string) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Add appends the pair only if key is not present yet.
func (f *Fields) Add(key, value string) bool {
	if f.Has(key) {
		return false
	}
	*f = append(*f, Field{Key: key, Value: value})
	return true
}

func (f Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
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

func (f *Fields) UnmarshalJSON(data []byte) error {
	out := Fields{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(bytes.TrimSpace(raw))
		}
		out = append(out, Field{Key: key, Value: value})
		return nil
	})
	if err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		out = nil
	}
	*f = out
	return nil
}

// Section is a headed responsibilities block.
type Section struct {
	Heading string
	Block   Block
}

// Sections keeps heading order and encodes as a JSON object of heading to block.
type Sections []Section

func (s Sections) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(section.Heading)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(section.Block)
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

func (s *Sections) UnmarshalJSON(data []byte) error {
	out := Sections{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var block Block
		if err := json.Unmarshal(raw, &block); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		out = append(out, Section{Heading: key, Block: block})
		return nil
	})
	if err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		out = nil
	}
	*s = out
	return nil
}

// decodeObject walks a JSON object in document order. A JSON null is accepted
// and yields no pairs.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
