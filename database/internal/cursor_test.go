package internal_test

import (
	"encoding/base64"
	"testing"

	"github.com/sagarc03/logtable/database/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCursor_DecodeCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []int64{1, 42, 1 << 40, 9223372036854775807} {
		cursor := internal.EncodeCursor(id)

		decoded, err := internal.DecodeCursor(cursor)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeCursor_Empty(t *testing.T) {
	t.Parallel()

	id, err := internal.DecodeCursor("")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor string
	}{
		{name: "not base64", cursor: "!!!not-base64!!!"},
		{name: "not a number", cursor: base64.URLEncoding.EncodeToString([]byte("abc"))},
		{name: "zero id", cursor: base64.URLEncoding.EncodeToString([]byte("0"))},
		{name: "negative id", cursor: base64.URLEncoding.EncodeToString([]byte("-5"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := internal.DecodeCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}
