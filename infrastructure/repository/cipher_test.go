package repository

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretBox(t *testing.T) {
	box := NewSecretBox("chave-de-teste")

	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		expected string
		err      error
	}{
		{
			name: "ida e volta devolve o texto original",
			setup: func(t *testing.T) string {
				sealed, err := box.Seal("1//0gRefreshToken")
				require.NoError(t, err)
				assert.NotContains(t, sealed, "RefreshToken")
				return sealed
			},
			expected: "1//0gRefreshToken",
		},
		{
			name: "valor vazio continua vazio",
			setup: func(t *testing.T) string {
				sealed, err := box.Seal("")
				require.NoError(t, err)
				assert.Empty(t, sealed)
				return sealed
			},
			expected: "",
		},
		{
			name: "byte adulterado é rejeitado",
			setup: func(t *testing.T) string {
				sealed, err := box.Seal("segredo")
				require.NoError(t, err)
				raw, _ := base64.StdEncoding.DecodeString(sealed)
				raw[len(raw)-1] ^= 0xff
				return base64.StdEncoding.EncodeToString(raw)
			},
			err: ErrSealedValueInvalid,
		},
		{
			name: "chave diferente não abre",
			setup: func(t *testing.T) string {
				sealed, err := NewSecretBox("outra-chave").Seal("segredo")
				require.NoError(t, err)
				return sealed
			},
			err: ErrSealedValueInvalid,
		},
		{
			name: "texto que não é base64 é rejeitado",
			setup: func(t *testing.T) string {
				return "não-é-base64"
			},
			err: ErrSealedValueInvalid,
		},
		{
			name: "valor curto demais é rejeitado",
			setup: func(t *testing.T) string {
				return base64.StdEncoding.EncodeToString([]byte("curto"))
			},
			err: ErrSealedValueInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed := tt.setup(t)

			plain, err := box.Open(sealed)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, plain)
		})
	}
}

func TestSecretBox_NonceUnico(t *testing.T) {
	box := NewSecretBox("chave-de-teste")

	first, err := box.Seal("mesmo texto")
	require.NoError(t, err)
	second, err := box.Seal("mesmo texto")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
