package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_KeepsText(t *testing.T) {
	render := NewRenderer(40)
	out, err := render("A quiet **meadow** at dawn.")
	require.NoError(t, err)
	assert.Contains(t, out, "meadow")
}

func TestPlain(t *testing.T) {
	out, err := Plain("1. Walk *slowly*")
	require.NoError(t, err)
	assert.Equal(t, "1. Walk *slowly*", out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "__,_|")
}
