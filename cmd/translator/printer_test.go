package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrinterCmd(format string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output", format, "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestPrintResult(t *testing.T) {
	value := map[string]string{"key": "tts_voice", "value": "nova"}
	table := func(w io.Writer) {
		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintln(w, "tts_voice\tnova")
	}

	cmd, out := newPrinterCmd("table")
	require.NoError(t, printResult(cmd, value, table))
	assert.Equal(t, "KEY        VALUE\ntts_voice  nova\n", out.String())

	cmd, out = newPrinterCmd("json")
	require.NoError(t, printResult(cmd, value, table))
	assert.Contains(t, out.String(), `"value": "nova"`)

	cmd, out = newPrinterCmd("yaml")
	require.NoError(t, printResult(cmd, value, table))
	assert.Contains(t, out.String(), "value: nova")

	cmd, _ = newPrinterCmd("xml")
	assert.Error(t, printResult(cmd, value, table))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "one two", clip("one\n  two", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}

func TestReadLineKeepsRemainingInput(t *testing.T) {
	r := strings.NewReader("first\r\nsecond")
	first, err := readLine(r)
	require.NoError(t, err)
	second, err := readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}
