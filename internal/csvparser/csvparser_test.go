package csvparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contaflow/extrato-core/internal/models"
)

func parseString(t *testing.T, content string) []models.RawEntry {
	t.Helper()
	entries, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	return entries
}

func TestParseDelimiterDetection(t *testing.T) {
	comma := "data,descricao,valor\n15/01/2024,PIX RECEBIDO,\"1.250,00\"\n"
	semicolon := "data;descricao;valor\n15/01/2024;PIX RECEBIDO;1.250,00\n"
	tab := "data\tdescricao\tvalor\n15/01/2024\tPIX RECEBIDO\t1.250,00\n"
	pipe := "data|descricao|valor\n15/01/2024|PIX RECEBIDO|1.250,00\n"

	for name, content := range map[string]string{
		"comma": comma, "semicolon": semicolon, "tab": tab, "pipe": pipe,
	} {
		t.Run(name, func(t *testing.T) {
			entries := parseString(t, content)
			require.Len(t, entries, 1)
			assert.Equal(t, "15/01/2024", entries[0].Date)
			assert.Equal(t, "PIX RECEBIDO", entries[0].Description)
			assert.Equal(t, "1250.00", entries[0].Amount.StringFixed(2))
		})
	}
}

func TestParseQuotedFields(t *testing.T) {
	content := "data,descricao,valor\n" +
		`15/01/2024,"MERCADO, FILIAL ""CENTRO""","-85,40"` + "\n"

	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, `MERCADO, FILIAL "CENTRO"`, entries[0].Description)
	assert.Equal(t, "-85.40", entries[0].Amount.StringFixed(2))
}

func TestParseHeaderNormalization(t *testing.T) {
	// Accented, mixed-case headers resolve to the same keys as their
	// plain snake_case forms.
	content := "Data Lançamento;Descrição;Valor\n15/01/2024;PADARIA;-12,50\n"

	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "15/01/2024", entries[0].Date)
	assert.Equal(t, "PADARIA", entries[0].Description)
	assert.Equal(t, "-12.50", entries[0].Amount.StringFixed(2))
}

func TestParseHeaderAliasPriority(t *testing.T) {
	content := "dt,historico,montante\n20/02/2024,TRANSFERENCIA,300,00\n"
	// Note: with comma delimiter the amount "300,00" would split; use semicolon.
	content = strings.ReplaceAll(content, ",", ";")

	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "20/02/2024", entries[0].Date)
	assert.Equal(t, "TRANSFERENCIA", entries[0].Description)
	assert.Equal(t, "300.00", entries[0].Amount.StringFixed(2))
}

func TestParseDebitCreditColumns(t *testing.T) {
	t.Run("debit and zero credit", func(t *testing.T) {
		content := "data;descricao;valor_debito;valor_credito\n15/01/2024;BOLETO;100,00;0\n"
		entries := parseString(t, content)
		require.Len(t, entries, 1)
		assert.Equal(t, "-100.00", entries[0].Amount.StringFixed(2))
	})

	t.Run("credit only", func(t *testing.T) {
		content := "data;descricao;credito\n15/01/2024;DEPOSITO;250,50\n"
		entries := parseString(t, content)
		require.Len(t, entries, 1)
		assert.Equal(t, "250.50", entries[0].Amount.StringFixed(2))
	})

	t.Run("debit column already negative stays negative", func(t *testing.T) {
		content := "data;descricao;debito\n15/01/2024;TARIFA;-9,90\n"
		entries := parseString(t, content)
		require.Len(t, entries, 1)
		assert.Equal(t, "-9.90", entries[0].Amount.StringFixed(2))
	})
}

func TestParseTipoOverridesSign(t *testing.T) {
	tests := []struct {
		name     string
		tipo     string
		valor    string
		expected string
	}{
		{"debito forces negative", "Débito", "100,00", "-100.00"},
		{"saida forces negative", "SAÍDA", "55,00", "-55.00"},
		{"credito forces positive", "crédito", "-70,00", "70.00"},
		{"entrada forces positive", "Entrada", "-80,00", "80.00"},
		{"unknown keyword keeps sign", "estorno", "-30,00", "-30.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := "data;descricao;valor;tipo\n15/01/2024;LANCAMENTO;" + tc.valor + ";" + tc.tipo + "\n"
			entries := parseString(t, content)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.expected, entries[0].Amount.StringFixed(2))
		})
	}
}

func TestParseDropsIncompleteRows(t *testing.T) {
	content := "data;descricao;valor\n" +
		"15/01/2024;;100,00\n" + // no description
		"16/01/2024;SEM VALOR;\n" + // no amount
		"17/01/2024;VALIDO;50,00\n"

	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "VALIDO", entries[0].Description)
}

func TestParseEmptyAndHeaderOnly(t *testing.T) {
	assert.Empty(t, parseString(t, ""))
	assert.Empty(t, parseString(t, "\n\n\n"))
	assert.Empty(t, parseString(t, "data;descricao;valor\n"))
}

func TestParseCategoriaColumn(t *testing.T) {
	content := "data;descricao;valor;categoria\n15/01/2024;MERCADO;-85,00;Alimentação\n"
	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alimentação", entries[0].Category)
}

func TestParseRaggedRows(t *testing.T) {
	// Rows wider than the header map overflow cells to positional keys and
	// still resolve the named fields.
	content := "data;descricao;valor\n15/01/2024;PIX;10,00;extra;cells\n"
	entries := parseString(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "PIX", entries[0].Description)
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	content := "data;descricao;valor\r\n\r\n15/01/2024;PIX;10,00\r\n\r\n"
	entries := parseString(t, content)
	require.Len(t, entries, 1)
}

func TestDetectDelimiterPreferenceOrder(t *testing.T) {
	// A header with equal field counts for two candidates picks the earlier
	// candidate in the fixed preference order.
	assert.Equal(t, ',', detectDelimiter("a,b|c"))
	assert.Equal(t, ';', detectDelimiter("a;b;c"))
}
