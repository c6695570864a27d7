package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want FlexInt
	}{
		{"number", `{"age": 25}`, FlexInt{Value: 25, Valid: true, Present: true}},
		{"numeric string", `{"age": "30"}`, FlexInt{Value: 30, Valid: true, Present: true}},
		{"padded numeric string", `{"age": " 42 "}`, FlexInt{Value: 42, Valid: true, Present: true}},
		{"non-numeric string", `{"age": "abc"}`, FlexInt{Present: true}},
		{"null", `{"age": null}`, FlexInt{}},
		{"absent", `{}`, FlexInt{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Age FlexInt `json:"age"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.json), &payload))
			assert.Equal(t, tt.want, payload.Age)
		})
	}
}

func TestFlexIntFromString(t *testing.T) {
	assert.Equal(t, FlexInt{Value: 21, Valid: true, Present: true}, FlexIntFromString("21"))
	assert.Equal(t, FlexInt{Present: true}, FlexIntFromString("abc"))
	assert.Equal(t, FlexInt{}, FlexIntFromString(""))
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want StringList
	}{
		{"array", `["sports","music"]`, StringList{"sports", "music"}},
		{"single string", `"sports"`, StringList{"sports"}},
		{"empty string", `""`, StringList{}},
		{"empty array", `[]`, StringList{}},
		{"null", `null`, StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_Slice_NeverNil(t *testing.T) {
	var l StringList
	assert.NotNil(t, l.Slice())
	assert.Empty(t, l.Slice())
}
