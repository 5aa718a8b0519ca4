package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input   string
		key     string
		value   string
		wantErr bool
	}{
		{input: "a=b", key: "a", value: "b"},
		{input: "a=", key: "a", value: ""},
		{input: "sig=a=b", key: "sig", value: "a=b"},
		{input: "with space=x y", key: "with space", value: "x y"},
		{input: "novalue", wantErr: true},
		{input: "=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestParseHeader(t *testing.T) {
	name, value, err := parseHeader("Content-Type:  application/json ")
	assert.NoError(t, err)
	assert.Equal(t, "Content-Type", name)
	assert.Equal(t, "application/json", value)

	name, value, err = parseHeader("X-Empty:")
	assert.NoError(t, err)
	assert.Equal(t, "X-Empty", name)
	assert.Equal(t, "", value)

	_, _, err = parseHeader(": value")
	assert.Error(t, err)
}

func TestColorDisabled(t *testing.T) {
	assert.True(t, colorDisabled(&bytes.Buffer{}, false))
	assert.True(t, colorDisabled(&bytes.Buffer{}, true))
}

func TestRootCmd_Commands(t *testing.T) {
	cmd := NewRootCmd()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"send", "get", "post", "put", "delete"} {
		assert.Contains(t, names, want)
	}
}
