package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{"", English, false},
		{"en", English, false},
		{"en_US", English, false},
		{"nl", Dutch, false},
		{"nl-BE", Dutch, false},
		{"fr", "", true},
		{"not a tag", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParseFallsBack(t *testing.T) {
	assert.Equal(t, Default, MustParse("xx-invalid-tag"))
	assert.Equal(t, Dutch, MustParse("nl"))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Dutch", Dutch.LanguageName())
	assert.Equal(t, "English", English.LanguageName())
}
