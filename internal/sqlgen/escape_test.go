package sqlgen

import (
	"testing"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", `"users"`},
		{"`users`", `"users"`},
		{`"users"`, `"users"`},
		{"[users]", `"users"`},
		{"  order items  ", `"order items"`},
		{`we"ird`, `"weird"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := EscapeIdentifier(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeIdentifierRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", `""`, "[]", "` `"} {
		_, err := EscapeIdentifier(in)
		assert.ErrorIs(t, err, types.ErrInvalidIdentifier, "input %q", in)
	}
}

func TestEscapeIdentifierIsIdempotent(t *testing.T) {
	inputs := []string{"users", "`users`", "[dbo]", `"a"b"`, " x ", "col`with`ticks", "[[nested]]"}
	for _, in := range inputs {
		once, err := EscapeIdentifier(in)
		require.NoError(t, err)
		twice, err := EscapeIdentifier(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestQualifiedName(t *testing.T) {
	got, err := QualifiedName(types.TableMapping{Name: "users"})
	require.NoError(t, err)
	assert.Equal(t, `"users"`, got)

	got, err = QualifiedName(types.TableMapping{Name: "users", Schema: "public"})
	require.NoError(t, err)
	assert.Equal(t, `"public"."users"`, got)

	_, err = QualifiedName(types.TableMapping{Name: " "})
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
}
