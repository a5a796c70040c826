package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLeadership(t *testing.T) {
	lex := MustLexicon()

	text := `Founded by John Doe, who serves as Founder and CEO of Acme. He started the firm in 2015.
Jane Smith joined the Board Member panel last year.
Alice Brown, Vice President of Sales across EMEA.
Alice Brown, Vice President of Sales across EMEA.
No leaders mentioned in this line at all.
`
	got := lex.FindLeadership(text)

	require.Len(t, got.Founders, 1)
	assert.Equal(t, "John Doe", got.Founders[0].Name)
	assert.Equal(t, "Founder and CEO of Acme", got.Founders[0].Role)

	require.Len(t, got.BoardMembers, 1)
	assert.Equal(t, "Jane Smith", got.BoardMembers[0].Name)

	require.Len(t, got.KeyPeople, 1)
	assert.Equal(t, "Alice Brown", got.KeyPeople[0].Name)
	assert.Equal(t, "Vice President of Sales across EMEA", got.KeyPeople[0].Role)
}

func TestFindLeadershipSamePersonTwoRoles(t *testing.T) {
	lex := MustLexicon()

	text := "Raj Patel is the Founder of Acme.\nRaj Patel also acts as Director of the advisory panel.\n"
	got := lex.FindLeadership(text)

	require.Len(t, got.Founders, 1)
	require.Len(t, got.BoardMembers, 1)
	assert.Equal(t, got.Founders[0].Name, got.BoardMembers[0].Name)
	assert.NotEqual(t, got.Founders[0].Role, got.BoardMembers[0].Role)
}

func TestFindLeadershipRequiresPersonName(t *testing.T) {
	lex := MustLexicon()
	got := lex.FindLeadership("the founder started the company years ago\n")
	assert.Empty(t, got.Founders)
	assert.Empty(t, got.BoardMembers)
	assert.Empty(t, got.KeyPeople)
}
