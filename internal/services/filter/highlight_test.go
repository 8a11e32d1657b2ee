package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	got := Highlight("Fully Recyclable & <green>", "recyclable to green")
	assert.Equal(t, "Fully <mark>Recyclable</mark> &amp; &lt;<mark>green</mark>&gt;", string(got))
}

func TestHighlight_NoKeywordsEscapes(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt;", string(Highlight("a <b>", "")))
	assert.Equal(t, "amp &amp;", string(Highlight("amp &", "am")), "short words are not highlighted")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "abcde...", Preview("abcdefgh", 5))
	assert.Equal(t, "ab...", Preview("ab cdef", 3))
}
