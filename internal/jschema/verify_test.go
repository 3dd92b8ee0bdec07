// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	data, err := Encode(Synthesize(widget()))
	require.NoError(t, err)
	assert.NoError(t, Verify("widget.schema.json", data))

	bad := []byte(`{"$schema": "http://json-schema.org/draft-07/schema#", "type": 12}`)
	assert.Error(t, Verify("bad.schema.json", bad))

	assert.Error(t, Verify("broken.schema.json", []byte(`{"type":`)))
}

func TestCompile_ValidatesInstances(t *testing.T) {
	data, err := Encode(Synthesize(widget()))
	require.NoError(t, err)
	schema, err := Compile("widget.schema.json", data)
	require.NoError(t, err)

	tests := []struct {
		name     string
		instance string
		wantErr  bool
	}{
		{name: "valid", instance: `{"id": "` + widgetID + `", "kind": "a", "tags": ["x"]}`},
		{name: "optional present", instance: `{"id": "` + widgetID + `", "kind": "b", "tags": [], "count": 2}`},
		{name: "id not a uuid", instance: `{"id": "w1", "kind": "a", "tags": []}`, wantErr: true},
		{name: "missing required", instance: `{"kind": "a", "tags": []}`, wantErr: true},
		{name: "unknown enum value", instance: `{"id": "` + widgetID + `", "kind": "c", "tags": []}`, wantErr: true},
		{name: "additional property", instance: `{"id": "` + widgetID + `", "kind": "a", "tags": [], "extra": true}`, wantErr: true},
		{name: "wrong item type", instance: `{"id": "` + widgetID + `", "kind": "a", "tags": [1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(tt.instance), &v))
			err := schema.Validate(v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompile_ErrorNamesFile(t *testing.T) {
	_, err := Compile("broken.schema.json", []byte("{"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "broken.schema.json"))
}

func TestValidateInstance(t *testing.T) {
	data, err := Encode(Synthesize(widget()))
	require.NoError(t, err)

	assert.NoError(t, ValidateInstance("widget.schema.json", data, []byte(`{"id": "`+widgetID+`", "kind": "a", "tags": []}`)))
	assert.Error(t, ValidateInstance("widget.schema.json", data, []byte(`{"kind": "a"}`)))

	err = ValidateInstance("widget.schema.json", data, []byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing instance")
}
