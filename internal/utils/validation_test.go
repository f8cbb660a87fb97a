package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid simple ID",
			id:      "site_123",
			wantErr: false,
		},
		{
			name:    "valid run UUID",
			id:      "0b41a5c1-6f1d-4f79-b2b8-7f6d9ad7c2bb",
			wantErr: false,
		},
		{
			name:    "valid ID with dots",
			id:      "la_metro.stop.801",
			wantErr: false,
		},
		{
			name:    "empty ID",
			id:      "",
			wantErr: true,
			errMsg:  "id cannot be empty",
		},
		{
			name:    "ID too long",
			id:      strings.Repeat("a", 101),
			wantErr: true,
			errMsg:  "id too long (max 100 characters)",
		},
		{
			name:    "ID with invalid characters",
			id:      "site_123<script>",
			wantErr: true,
			errMsg:  "id contains invalid characters",
		},
		{
			name:    "ID with SQL injection attempt",
			id:      "run_'; DROP TABLE runs; --",
			wantErr: true,
			errMsg:  "id contains invalid characters",
		},
		{
			name:    "ID with path traversal",
			id:      "../../../etc/passwd",
			wantErr: true,
			errMsg:  "id contains invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr {
				assert.Error(t, err, "ValidateID should return error for invalid ID")
				assert.Contains(t, err.Error(), tt.errMsg, "Error message should contain expected text")
			} else {
				assert.NoError(t, err, "ValidateID should not return error for valid ID")
			}
		})
	}
}

func TestValidateLatitude(t *testing.T) {
	assert.NoError(t, ValidateLatitude(34.0522))
	assert.NoError(t, ValidateLatitude(-90.0))
	assert.NoError(t, ValidateLatitude(90.0))
	assert.Error(t, ValidateLatitude(90.01))
	assert.Error(t, ValidateLatitude(-95.0))
}

func TestValidateLongitude(t *testing.T) {
	assert.NoError(t, ValidateLongitude(-118.2437))
	assert.NoError(t, ValidateLongitude(-180.0))
	assert.NoError(t, ValidateLongitude(180.0))
	assert.Error(t, ValidateLongitude(180.01))
	assert.Error(t, ValidateLongitude(-200.0))
}

func TestValidateRadius(t *testing.T) {
	assert.NoError(t, ValidateRadius(0))
	assert.NoError(t, ValidateRadius(804.672))
	assert.NoError(t, ValidateRadius(MaxSearchRadiusMeters))
	assert.Error(t, ValidateRadius(-1))
	assert.Error(t, ValidateRadius(MaxSearchRadiusMeters+1))
}

func TestValidateLocationParams(t *testing.T) {
	t.Run("valid params produce no errors", func(t *testing.T) {
		fieldErrors := ValidateLocationParams(34.0522, -118.2437, 536.448)
		assert.Empty(t, fieldErrors)
	})

	t.Run("zero radius is skipped", func(t *testing.T) {
		fieldErrors := ValidateLocationParams(34.0522, -118.2437, 0)
		assert.Empty(t, fieldErrors)
	})

	t.Run("bad coordinates are both reported", func(t *testing.T) {
		fieldErrors := ValidateLocationParams(123.0, -456.0, 0)
		assert.Contains(t, fieldErrors, "lat")
		assert.Contains(t, fieldErrors, "lon")
	})

	t.Run("oversized radius is reported", func(t *testing.T) {
		fieldErrors := ValidateLocationParams(34.0522, -118.2437, 50000)
		assert.Contains(t, fieldErrors, "radius")
	})
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Main St Apartments", SanitizeInput("  Main St Apartments  "))
	assert.Equal(t, "alert('xss')", SanitizeInput("<script>alert('xss')</script>"))
	assert.Equal(t, "Broadway Lofts", SanitizeInput("<b>Broadway Lofts</b>"))
	assert.Equal(t, "", SanitizeInput("   "))
}
