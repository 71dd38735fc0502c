// Package ctype normalizes, validates and content-addresses KILT CTypes (claim type schemas).
package ctype

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/crypto/blake2b"
)

const (
	// MetaSchemaURI is the $schema every CType declares.
	MetaSchemaURI = "http://kilt-protocol.org/draft-01/ctype#"
	// IDPrefix prefixes the hex hash in a CType id.
	IDPrefix = "kilt:ctype:0x"
)

// ErrInvalidSchema is returned for schemas that are not well-formed CTypes.
var ErrInvalidSchema = errors.New("invalid schema")

//go:embed metaschema.json
var metaSchemaJSON string

var compileMetaSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(metaSchemaJSON))
})

// CType is a normalized schema and its content address.
type CType struct {
	ID   string
	Hash [32]byte
	// Schema is the normalized schema including $id.
	Schema map[string]any
	// Canonical is the hashed serialization (sorted keys, $id omitted). It is the
	// payload of the on-chain registration call.
	Canonical []byte
}

// Parse normalizes raw JSON into a CType. Missing "$schema", "type", "properties" and
// "additionalProperties" members are filled in; "title" is mandatory.
func Parse(raw []byte) (*CType, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var schema map[string]any
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("%w: schema must be a JSON object: %v", ErrInvalidSchema, err)
	}
	if schema == nil {
		return nil, fmt.Errorf("%w: schema must be a JSON object", ErrInvalidSchema)
	}
	return New(schema)
}

// New normalizes an already decoded schema. The map is not modified.
func New(in map[string]any) (*CType, error) {
	title, _ := in["title"].(string)
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidSchema)
	}

	schema := make(map[string]any, len(in)+4)
	for k, v := range in {
		schema[k] = v
	}
	setDefault(schema, "$schema", MetaSchemaURI)
	setDefault(schema, "type", "object")
	setDefault(schema, "properties", map[string]any{})
	setDefault(schema, "additionalProperties", false)

	claimedID, hasID := schema["$id"]
	delete(schema, "$id")

	canonical, err := Canonical(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	hash := blake2b.Sum256(canonical)
	id := IDPrefix + hex.EncodeToString(hash[:])

	if hasID && claimedID != id {
		return nil, fmt.Errorf("%w: $id %v does not match content hash %s", ErrInvalidSchema, claimedID, id)
	}
	schema["$id"] = id

	if err := validate(schema); err != nil {
		return nil, err
	}

	return &CType{ID: id, Hash: hash, Schema: schema, Canonical: canonical}, nil
}

// Canonical serializes v as JSON with lexicographically sorted object keys and no HTML escaping.
func Canonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// HashFromID parses the hash out of a "kilt:ctype:0x..." id.
func HashFromID(id string) ([32]byte, error) {
	var out [32]byte
	if !strings.HasPrefix(id, IDPrefix) {
		return out, fmt.Errorf("%w: id must start with %s", ErrInvalidSchema, IDPrefix)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(id, IDPrefix))
	if err != nil || len(b) != len(out) {
		return out, fmt.Errorf("%w: id must carry a 32 byte hex hash", ErrInvalidSchema)
	}
	copy(out[:], b)
	return out, nil
}

// IDFromHash formats a CType hash as an id.
func IDFromHash(hash [32]byte) string {
	return IDPrefix + hex.EncodeToString(hash[:])
}

func validate(schema map[string]any) error {
	meta, err := compileMetaSchema()
	if err != nil {
		return fmt.Errorf("compile metaschema: %w", err)
	}
	res, err := meta.Validate(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSchema, strings.Join(msgs, "; "))
}

func setDefault(m map[string]any, key string, v any) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}
