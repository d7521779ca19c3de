package taggedtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, doc string) []Token {
	t.Helper()
	var tokens []Token
	err := Scan(strings.NewReader(doc), func(tok Token) error {
		tokens = append(tokens, tok)
		return nil
	})
	require.NoError(t, err)
	return tokens
}

func TestScan(t *testing.T) {
	doc := `<doc>
	  <book name="Luke">
	    <verse>
	      <w ln="89.32" ref="Luk 1:1">love</w>
	      <w ln="89.93 92.1" ref="Luk 1:2">grace</w>
	    </verse>
	  </book>
	</doc>`

	tokens := collect(t, doc)
	require.Len(t, tokens, 2)

	assert.Equal(t, Token{Text: "love", Codes: []string{"89.32"}, Ref: "Luk 1:1"}, tokens[0])
	assert.Equal(t, Token{Text: "grace", Codes: []string{"89.93", "92.1"}, Ref: "Luk 1:2"}, tokens[1])
}

func TestScan_AnyDepthAndStructure(t *testing.T) {
	doc := `<a><b><c><w ln="10" ref="r1">deep</w></c></b><w ln="11">shallow</w></a>`

	tokens := collect(t, doc)
	require.Len(t, tokens, 2)
	assert.Equal(t, "deep", tokens[0].Text)
	assert.Equal(t, "shallow", tokens[1].Text)
	assert.Equal(t, "", tokens[1].Ref)
}

func TestScan_SkipsUntaggedElements(t *testing.T) {
	doc := `<doc><w ref="Luk 1:1">untagged</w><w ln="" ref="Luk 1:2">empty</w></doc>`
	tokens := collect(t, doc)
	assert.Empty(t, tokens)
}

func TestScan_NestedMarkupInsideToken(t *testing.T) {
	doc := `<doc><phrase ln="57.1" ref="Mat 2:2"> give <em>back</em> </phrase></doc>`
	tokens := collect(t, doc)
	require.Len(t, tokens, 1)
	assert.Equal(t, "give back", tokens[0].Text)
}

func TestScan_NormalizesSurfaceForms(t *testing.T) {
	// Decomposed alpha + acute must equal the composed form after scanning.
	doc := "<doc><w ln=\"25.1\" ref=\"r\">άγαπη</w></doc>"
	tokens := collect(t, doc)
	require.Len(t, tokens, 1)
	assert.Equal(t, "άγαπη", tokens[0].Text)
}

func TestScan_MalformedXML(t *testing.T) {
	err := Scan(strings.NewReader("<doc><w ln='1'>x</doc>"), func(Token) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestScan_CallbackErrorStops(t *testing.T) {
	doc := `<doc><w ln="1">a</w><w ln="2">b</w></doc>`
	calls := 0
	err := Scan(strings.NewReader(doc), func(Token) error {
		calls++
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}
