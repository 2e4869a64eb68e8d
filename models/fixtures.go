package models

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/ugorji/go/codec"
)

var (
	//go:embed fixtures/properties.json
	propertiesFixture []byte
	//go:embed fixtures/saved_properties.json
	savedPropertiesFixture []byte
)

// Seed replaces both collections of db with the fixtures. Empty paths fall
// back to the embedded fixtures.
func Seed(db *durable.Database, propertiesPath, savedPropertiesPath string) error {
	var properties []*Property
	if err := decodeFixture(propertiesFixture, propertiesPath, &properties); err != nil {
		return err
	}
	var saved []*SavedProperty
	if err := decodeFixture(savedPropertiesFixture, savedPropertiesPath, &saved); err != nil {
		return err
	}

	ids := make(map[string]bool, len(properties))
	values := make([]interface{}, 0, len(properties))
	for _, p := range properties {
		if p.PropertyId == "" || ids[p.PropertyId] {
			return fmt.Errorf("invalid or duplicate property id %q", p.PropertyId)
		}
		ids[p.PropertyId] = true
		values = append(values, p)
	}
	if err := validateSavedProperties(saved); err != nil {
		return err
	}
	savedValues := make([]interface{}, 0, len(saved))
	for _, sp := range saved {
		savedValues = append(savedValues, sp)
	}

	db.Properties().Reset(values)
	db.SavedProperties().Reset(savedValues)
	return nil
}

func decodeFixture(embedded []byte, path string, v interface{}) error {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		data = b
	}
	handle := new(codec.JsonHandle)
	if err := codec.NewDecoderBytes(data, handle).Decode(v); err != nil {
		return fmt.Errorf("fixture %s: %v", fixtureName(path), err)
	}
	return nil
}

func fixtureName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
