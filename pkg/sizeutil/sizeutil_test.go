package sizeutil_test

import (
	"testing"

	"github.com/cooptask/cooptask/pkg/sizeutil"
	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input       string
		expected    int
		expectedErr error
	}{
		"valid GB size": {
			input:    "10GB",
			expected: 10 << 30,
		},
		"valid MB size": {
			input:    "5MB",
			expected: 5 << 20,
		},
		"valid KB size": {
			input:    "100KB",
			expected: 100 << 10,
		},
		"valid B size": {
			input:    "200B",
			expected: 200,
		},
		"valid lowercase GB size": {
			input:    "3gb",
			expected: 3 << 30,
		},
		"valid lowercase MB size": {
			input:    "10mb",
			expected: 10 << 20,
		},
		"valid empty size (B)": {
			input:    "0B",
			expected: 0,
		},
		"valid size with spaces": {
			input:    " 4KB ",
			expected: 4 << 10,
		},
		"valid largest GB size": {
			input:    "8589934591GB",
			expected: 8589934591 << 30,
		},
		"invalid size with text": {
			input:       "10GBB",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
		"invalid size with no number": {
			input:       "GB",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
		"invalid size without unit": {
			input:       "100",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
		"invalid negative size": {
			input:       "-1KB",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
		"invalid overflowing size": {
			input:       "9999999999GB",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
		"empty string": {
			input:       "",
			expected:    0,
			expectedErr: sizeutil.ErrInvalidSize,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result, err := sizeutil.ParseSize(test.input)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}
