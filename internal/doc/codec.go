package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

var jsonNull = []byte("null")

// objectFields splits a JSON object into its raw members. A repeated key is
// an integrity error rather than last-value-wins.
func objectFields(raw json.RawMessage, path string) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, integrityErr(path, "expected object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, integrityErr(path, "%v", err)
	}
	m := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, integrityErr(path, "%v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, integrityErr(path, "expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, integrityErr(fieldPath(path, key), "%v", err)
		}
		if _, dup := m[key]; dup {
			return nil, integrityErr(fieldPath(path, key), "duplicate field")
		}
		m[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, integrityErr(path, "%v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, integrityErr(path, "unexpected data after object")
	}
	return m, nil
}

// marshalRaw is json.Marshal without HTML escaping, so text such as "a<b&c"
// is written literally.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// requiredField returns the member named key, treating null as absent.
func requiredField(m map[string]json.RawMessage, key, path string) (json.RawMessage, error) {
	raw, ok := m[key]
	if !ok || isNull(raw) {
		return nil, integrityErr(fieldPath(path, key), "missing required field")
	}
	return raw, nil
}

// decodeScalar unmarshals a required scalar member into dst.
func decodeScalar(m map[string]json.RawMessage, key, path string, dst any) error {
	raw, err := requiredField(m, key, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return integrityErr(fieldPath(path, key), "%v", err)
	}
	return nil
}

// decodeArray splits a JSON array into its raw elements.
func decodeArray(raw json.RawMessage, path string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, integrityErr(path, "expected array")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, integrityErr(path, "%v", err)
	}
	return elems, nil
}

func fieldPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
