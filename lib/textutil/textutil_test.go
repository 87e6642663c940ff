package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "Open Sans", expected: "opensans"},
		{input: "  Playfair\tDisplay\n", expected: "playfairdisplay"},
		{input: "INTER", expected: "inter"},
	}
	for _, row := range table {
		require.Equal(t, row.expected, NormalizeName(row.input))
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Segoe UI Emoji", []string{"emoji"}))
	require.False(t, MatchName("Montserrat", []string{"emoji", "icon"}))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "hello", Truncate("hello", 10))
	require.Equal(t, "hel", Truncate("hello", 3))
	require.Equal(t, "hél", Truncate("héllo", 3))
	require.Equal(t, "", Truncate("hello", 0))
}

func TestDedupe(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "c", "b"}))
	require.Empty(t, Dedupe(nil))
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold([]string{"Inter", "Lato"}, "inter"))
	require.False(t, ContainsFold([]string{"Inter"}, "Lato"))
}

func TestTitleWord(t *testing.T) {
	require.Equal(t, "Stripe", TitleWord("stripe"))
	require.Equal(t, "Acme", TitleWord("ACME"))
	require.Equal(t, "", TitleWord(""))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a \n\t b   c "))
}
