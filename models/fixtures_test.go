package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/stretchr/testify/assert"
)

func TestSeedOverride(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	properties := filepath.Join(dir, "properties.json")
	saved := filepath.Join(dir, "saved.json")
	assert.Nil(os.WriteFile(properties, []byte(`[{"property_id":"a","title":"Loft","price":100000,"bathrooms":1.5}]`), 0644))
	assert.Nil(os.WriteFile(saved, []byte(`[]`), 0644))

	db := durable.NewDatabase(durable.Latency{})
	assert.Nil(Seed(db, properties, saved))
	assert.Equal(1, db.Properties().Size())
	assert.Equal(0, db.SavedProperties().Size())
	p := db.Properties().Values()[0].(*Property)
	assert.Equal("Loft", p.Title)
	assert.Equal(1.5, p.Bathrooms)
	assert.Nil(p.Address)

	assert.Nil(os.WriteFile(properties, []byte(`[{"property_id":"a"},{"property_id":"a"}]`), 0644))
	assert.NotNil(Seed(db, properties, saved))
	assert.Equal(1, db.Properties().Size())

	assert.Nil(os.WriteFile(saved, []byte(`[{"saved_property_id":"s1","property_id":"a"},{"saved_property_id":"s2","property_id":"a"}]`), 0644))
	assert.NotNil(Seed(db, "", saved))

	assert.NotNil(Seed(db, filepath.Join(dir, "missing.json"), ""))
}
