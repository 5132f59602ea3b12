package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Lancamento", StripAccents("Lançamento"))
	assert.Equal(t, "SAO JOAO", StripAccents("SÃO JOÃO"))
	assert.Equal(t, "credito", StripAccents("crédito"))
	assert.Equal(t, "plain", StripAccents("plain"))
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"accented header", "Data Lançamento", "data_lancamento"},
		{"already normalized", "data_lancamento", "data_lancamento"},
		{"mixed separators", "  Valor (R$) ", "valor_r"},
		{"uppercase", "DESCRIÇÃO", "descricao"},
		{"empty", "", ""},
		{"only punctuation", "---", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeKey(tc.in))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "PIX RECEBIDO JOAO", CollapseWhitespace("  PIX   RECEBIDO\tJOAO "))
	assert.Equal(t, "", CollapseWhitespace("   "))
	assert.Equal(t, "um", CollapseWhitespace("um"))
}
