package textmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	src := "# Summary\n\nI **love** building [Go](https://go.dev) services.\n\n" +
		"```\nfmt.Println(\"code here\")\n```\n\n" +
		"- first item\n- second item\n"

	got := PlainText([]byte(src))

	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "I love building Go services.")
	assert.Contains(t, got, "first item")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "https://go.dev")
	assert.NotContains(t, got, "code here")
	assert.Len(t, Paragraphs(got), 4)
}

func TestPlainTextSoftBreaks(t *testing.T) {
	got := PlainText([]byte("Hello\nworld.\n"))
	assert.Equal(t, "Hello world.", got)
}

func TestPlainTextEmpty(t *testing.T) {
	assert.Equal(t, "", PlainText(nil))
}
