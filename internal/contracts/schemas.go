// Package contracts validates inbound payloads against JSON schemas. Only
// the create envelope is constrained; the raw listing payload inside it is
// deliberately schema-less.
package contracts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/listing.v1.json
var listingSchemaV1 string

var listingSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("listing.v1.json", strings.NewReader(listingSchemaV1)); err != nil {
		log.Fatalf("failed to load listing schema: %v", err)
	}
	schema, err := compiler.Compile("listing.v1.json")
	if err != nil {
		log.Fatalf("failed to compile listing schema: %v", err)
	}
	listingSchema = schema
}

// ValidateListingCreate checks a create request body against the listing
// envelope schema.
func ValidateListingCreate(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := listingSchema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
