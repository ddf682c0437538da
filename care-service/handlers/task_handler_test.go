package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paddock-backend/shared/database/models/care"
)

func fieldsJSON(t *testing.T, fields []care.TaskField) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return data
}

func TestValidateTaskValuesRequiredFieldMissing(t *testing.T) {
	fields := fieldsJSON(t, []care.TaskField{
		{Key: "water_level", Label: "Water level", Kind: "number", Required: true},
		{Key: "notes", Label: "Notes", Kind: "text", Required: false},
	})

	err := validateTaskValues(fields, map[string]interface{}{"notes": "all good"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "water_level")
}

func TestValidateTaskValuesAllRequiredPresent(t *testing.T) {
	fields := fieldsJSON(t, []care.TaskField{
		{Key: "water_level", Label: "Water level", Kind: "number", Required: true},
		{Key: "fed", Label: "Fed", Kind: "checkbox", Required: true},
	})

	err := validateTaskValues(fields, map[string]interface{}{
		"water_level": 3,
		"fed":         true,
	})
	assert.NoError(t, err)
}

func TestValidateTaskValuesUnknownKeysAllowed(t *testing.T) {
	fields := fieldsJSON(t, []care.TaskField{
		{Key: "fed", Label: "Fed", Kind: "checkbox", Required: true},
	})

	err := validateTaskValues(fields, map[string]interface{}{
		"fed":   true,
		"extra": "not in the template",
	})
	assert.NoError(t, err)
}

func TestValidateTaskValuesEmptyDefinition(t *testing.T) {
	assert.NoError(t, validateTaskValues(nil, map[string]interface{}{"anything": 1}))
	assert.NoError(t, validateTaskValues(json.RawMessage(`[]`), nil))
}

func TestValidateTaskValuesBrokenDefinition(t *testing.T) {
	// A corrupt stored definition must not block caretakers
	assert.NoError(t, validateTaskValues(json.RawMessage(`{not json`), nil))
}
