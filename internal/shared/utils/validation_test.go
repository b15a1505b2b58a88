package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		wantErr  bool
	}{
		{"valid", "hello", true, false},
		{"required empty", "", true, true},
		{"optional empty", "", false, false},
		{"too long", strings.Repeat("a", 11), true, true},
		{"null byte", "a\x00b", true, true},
		{"invalid utf8", "\xff", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(tt.value, "field", 1, 10, tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePackage(t *testing.T) {
	valid := []string{"com.android.chrome", "com.sec.android.app.sbrowser", "a", "com.example.app_2"}
	for _, pkg := range valid {
		assert.NoError(t, ValidatePackage(pkg, "package"), pkg)
	}

	invalid := []string{"", "com..chrome", ".com", "com.", "1com.example", "com.exa mple", "com/example"}
	for _, pkg := range invalid {
		assert.Error(t, ValidatePackage(pkg, "package"), pkg)
	}
}

func TestValidateLabel(t *testing.T) {
	assert.NoError(t, ValidateLabel("", "label"))
	assert.NoError(t, ValidateLabel("계산기", "label"))
	assert.Error(t, ValidateLabel(strings.Repeat("x", MaxLabelLength+1), "label"))
}

func TestValidateColor(t *testing.T) {
	assert.NoError(t, ValidateColor("", "color"))
	assert.NoError(t, ValidateColor("#3b82f6", "color"))
	assert.NoError(t, ValidateColor("#3B82F680", "color"))
	assert.Error(t, ValidateColor("blue", "color"))
	assert.Error(t, ValidateColor("#12345", "color"))
}
