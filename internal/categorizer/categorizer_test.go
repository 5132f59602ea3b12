package categorizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() []CategoryRule {
	return []CategoryRule{
		{Name: "Alimentação", Keywords: []string{"mercado", "padaria", "restaurante"}},
		{Name: "Transporte", Keywords: []string{"posto", "uber"}},
		{Name: "Receitas", Keywords: []string{"salário", "pix recebido"}},
	}
}

func TestCategorize(t *testing.T) {
	c := New(testRules())

	tests := []struct {
		name        string
		description string
		category    string
		matched     bool
	}{
		{"plain keyword", "COMPRA MERCADO CENTRAL", "Alimentação", true},
		{"accent on description", "PADARIA SÃO JOÃO", "Alimentação", true},
		{"accent on keyword", "PAGAMENTO SALARIO MENSAL", "Receitas", true},
		{"multi word keyword", "PIX RECEBIDO JOAO", "Receitas", true},
		{"second rule", "POSTO SHELL AV BRASIL", "Transporte", true},
		{"no match", "TARIFA BANCARIA", "", false},
		{"empty description", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			category, ok := c.Categorize(tc.description)
			assert.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestCategorizeFirstRuleWins(t *testing.T) {
	c := New([]CategoryRule{
		{Name: "Primeira", Keywords: []string{"mercado"}},
		{Name: "Segunda", Keywords: []string{"mercado"}},
	})

	category, ok := c.Categorize("MERCADO")
	require.True(t, ok)
	assert.Equal(t, "Primeira", category)
}

func TestCategorizeEmptyRules(t *testing.T) {
	_, ok := New(nil).Categorize("MERCADO")
	assert.False(t, ok)

	var nilCategorizer *KeywordCategorizer
	_, ok = nilCategorizer.Categorize("MERCADO")
	assert.False(t, ok)
}

func TestLoadRules(t *testing.T) {
	content := `categories:
  - name: Alimentação
    keywords:
      - mercado
      - padaria
  - name: Transporte
    keywords:
      - posto
`
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Alimentação", rules[0].Name)
	assert.Equal(t, []string{"mercado", "padaria"}, rules[0].Keywords)
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadRulesInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [unclosed"), 0600))

	_, err := LoadRules(path)
	assert.Error(t, err)
}
