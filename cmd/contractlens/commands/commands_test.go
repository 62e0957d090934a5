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

func TestParseSets(t *testing.T) {
	values, err := parseSets([]string{"Party_Name=Acme Corp", "Fee= 1,000 = USD"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", values["Party_Name"])
	assert.Equal(t, " 1,000 = USD", values["Fee"])

	_, err = parseSets([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseSets([]string{"=x"})
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, writeOutput(cmd, "-", []byte("hello")))
	assert.Equal(t, "hello", buf.String())

	path := filepath.Join(t.TempDir(), "nested", "out.html")
	require.NoError(t, writeOutput(cmd, path, []byte("<html></html>")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestReadContract_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.txt")
	require.NoError(t, os.WriteFile(path, []byte("Clause 1."), 0o644))
	text, err := readContract(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "Clause 1.", text)
}

func TestCompareCmd_ArgCount(t *testing.T) {
	cmd := compareCmd()
	assert.Error(t, cmd.Args(cmd, []string{"one.pdf"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.pdf", "b.pdf"}))
	many := make([]string, 11)
	assert.Error(t, cmd.Args(cmd, many))
}
