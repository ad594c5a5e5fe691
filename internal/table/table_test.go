package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_String(t *testing.T) {
	tb := New("NAME", "KIND", "ARGS")
	tb.Append("Greeting", "formatted", "1")
	tb.Append("问候", "plain")

	want := strings.Join([]string{
		"NAME      KIND       ARGS",
		"--------  ---------  ----",
		"Greeting  formatted  1",
		"问候      plain",
		"",
	}, "\n")
	assert.Equal(t, want, tb.String())
	assert.Equal(t, 2, tb.Len())
}

func TestTable_WriteTo(t *testing.T) {
	tb := New("A")
	var buf bytes.Buffer
	n, err := tb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "A\n-\n", buf.String())
}
