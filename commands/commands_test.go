package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domainsXML = `<?xml version="1.0" encoding="utf-8"?>
<List>
  <Possibilities>
    <ownseq class="CmSemanticDomain">
      <Abbreviation><AUni ws="en">A.1</AUni></Abbreviation>
      <Name><AUni ws="en">Affection</AUni></Name>
      <LouwNidaCodes><Uni>89 Relations; 25 Attitudes</Uni></LouwNidaCodes>
      <SubPossibilities>
        <ownseq class="CmSemanticDomain">
          <Abbreviation><AUni ws="en">C.3</AUni></Abbreviation>
          <Name><AUni ws="en">Pronouns</AUni></Name>
          <LouwNidaCodes><Uni>92A Speaker</Uni></LouwNidaCodes>
        </ownseq>
      </SubPossibilities>
    </ownseq>
  </Possibilities>
</List>`

const taggedXML = `<doc>
  <verse>
    <w ln="89.32" ref="Luk 1:1">love</w>
    <w ln="92.1" ref="Luk 1:2">he</w>
    <w ln="999.1" ref="Luk 1:3">odd</w>
  </verse>
</doc>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// runCommand executes one subcommand with an isolated config.
func runCommand(t *testing.T, build func(*Runtime) *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "semdomtool.yaml")
	writeFile(t, cfgPath, "codes:\n  language: en\n")
	rt := &Runtime{ConfigPath: cfgPath}

	cmd := build(rt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "domains.xml")
	outPath := filepath.Join(dir, "mapping.csv")
	writeFile(t, inPath, domainsXML)

	out, err := runCommand(t, NewBuildCommand, inPath, outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully created")
	assert.Contains(t, out, "Total mapping rows: 3 (3 distinct LouwNida codes)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, `"LouwNida_Code","SemDom","SemDom_Name"`)
	assert.Contains(t, csv, `"89","A.1","Affection"`)
	assert.Contains(t, csv, `"25","A.1","Affection"`)
	assert.Contains(t, csv, `"92A","C.3","Pronouns"`)
}

func TestBuildCommand_QuoteAllDisabled(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "domains.xml")
	outPath := filepath.Join(dir, "mapping.csv")
	writeFile(t, inPath, domainsXML)

	cfgPath := filepath.Join(dir, "semdomtool.yaml")
	writeFile(t, cfgPath, "output:\n  quote_all: false\n")
	rt := &Runtime{ConfigPath: cfgPath}

	cmd := NewBuildCommand(rt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{inPath, outPath})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, "LouwNida_Code,SemDom,SemDom_Name")
	assert.Contains(t, csv, "89,A.1,Affection")
	assert.NotContains(t, csv, `"89"`)
}

func TestBuildCommand_Idempotent(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "domains.xml")
	writeFile(t, inPath, domainsXML)

	outA := filepath.Join(dir, "a.csv")
	outB := filepath.Join(dir, "b.csv")
	_, err := runCommand(t, NewBuildCommand, inPath, outA)
	require.NoError(t, err)
	_, err = runCommand(t, NewBuildCommand, inPath, outB)
	require.NoError(t, err)

	a, err := os.ReadFile(outA)
	require.NoError(t, err)
	b, err := os.ReadFile(outB)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildCommand_MalformedXMLFatal(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "bad.xml")
	outPath := filepath.Join(dir, "mapping.csv")
	writeFile(t, inPath, "<List><Possibilities></List>")

	_, err := runCommand(t, NewBuildCommand, inPath, outPath)
	require.Error(t, err)

	// No output file may be left behind.
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "domains.xml")
	mapPath := filepath.Join(dir, "mapping.csv")
	writeFile(t, inPath, domainsXML)
	_, err := runCommand(t, NewBuildCommand, inPath, mapPath)
	require.NoError(t, err)

	before, err := os.ReadFile(mapPath)
	require.NoError(t, err)

	out, err := runCommand(t, NewAnalyzeCommand, mapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "LouwNida Code Analysis")
	assert.Contains(t, out, "Total code numbers found: 3 out of 93")

	// Read-only: the input must be byte-identical afterwards.
	after, err := os.ReadFile(mapPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCoverageCommand(t *testing.T) {
	dir := t.TempDir()
	domPath := filepath.Join(dir, "domains.xml")
	mapPath := filepath.Join(dir, "mapping.csv")
	textPath := filepath.Join(dir, "text.xml")
	covPath := filepath.Join(dir, "coverage.csv")
	writeFile(t, domPath, domainsXML)
	writeFile(t, textPath, taggedXML)

	_, err := runCommand(t, NewBuildCommand, domPath, mapPath)
	require.NoError(t, err)

	out, err := runCommand(t, NewCoverageCommand, mapPath, textPath, "-o", covPath)
	require.NoError(t, err)

	assert.Contains(t, out, "SEMANTIC DOMAINS COVERED")
	assert.Contains(t, out, "A.1: Affection")
	assert.Contains(t, out, "C.3: Pronouns")
	assert.Contains(t, out, "UNMATCHED LN CODES")
	assert.Contains(t, out, "999.1 -> 999")

	data, err := os.ReadFile(covPath)
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, `"A.1","Affection","1","1","1","89.32","love (Luk 1:1)"`)
	assert.Contains(t, csv, `"C.3","Pronouns","1","1","1","92.1","he (Luk 1:2)"`)
}

func TestCoverageCommand_Glob(t *testing.T) {
	dir := t.TempDir()
	domPath := filepath.Join(dir, "domains.xml")
	mapPath := filepath.Join(dir, "mapping.csv")
	covPath := filepath.Join(dir, "coverage.csv")
	writeFile(t, domPath, domainsXML)

	textDir := filepath.Join(dir, "texts", "nt")
	require.NoError(t, os.MkdirAll(textDir, 0o755))
	writeFile(t, filepath.Join(textDir, "luke.xml"),
		`<doc><w ln="89.1" ref="Luk 1:1">love</w></doc>`)
	writeFile(t, filepath.Join(textDir, "john.xml"),
		`<doc><w ln="89.2" ref="Jhn 3:16">love</w></doc>`)

	_, err := runCommand(t, NewBuildCommand, domPath, mapPath)
	require.NoError(t, err)

	pattern := filepath.Join(dir, "texts", "**", "*.xml")
	out, err := runCommand(t, NewCoverageCommand, mapPath, pattern, "-o", covPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Tokens processed: 2")

	data, err := os.ReadFile(covPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"love (Jhn 3:16; Luk 1:1)"`)
}

func TestCoverageCommand_NoMatchingTexts(t *testing.T) {
	dir := t.TempDir()
	domPath := filepath.Join(dir, "domains.xml")
	mapPath := filepath.Join(dir, "mapping.csv")
	writeFile(t, domPath, domainsXML)
	_, err := runCommand(t, NewBuildCommand, domPath, mapPath)
	require.NoError(t, err)

	_, err = runCommand(t, NewCoverageCommand, mapPath, filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tagged-text files match")
}
