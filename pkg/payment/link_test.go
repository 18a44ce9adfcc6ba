package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkGenerator_URL(t *testing.T) {
	g, err := NewLinkGenerator("https://pay.example.com/checkout", "s3cret")
	require.NoError(t, err)

	link := g.URL("bk-1", 3, 300)
	again := g.URL("bk-1", 3, 300)
	assert.Equal(t, link, again)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "pay.example.com", u.Host)
	assert.Equal(t, "/checkout", u.Path)
	assert.Equal(t, "bk-1", u.Query().Get("booking"))
	assert.Equal(t, "3", u.Query().Get("member"))
	assert.Equal(t, "300", u.Query().Get("amount"))
	assert.Equal(t, g.Reference("bk-1", 3, 300), u.Query().Get("ref"))
}

func TestLinkGenerator_ReferenceDependsOnInputs(t *testing.T) {
	g, err := NewLinkGenerator("https://pay.example.com", "s3cret")
	require.NoError(t, err)
	other, err := NewLinkGenerator("https://pay.example.com", "different")
	require.NoError(t, err)

	ref := g.Reference("bk-1", 3, 300)
	assert.NotEqual(t, ref, g.Reference("bk-1", 3, 301))
	assert.NotEqual(t, ref, g.Reference("bk-1", 4, 300))
	assert.NotEqual(t, ref, other.Reference("bk-1", 3, 300))
}

func TestNewLinkGenerator_RejectsRelativeURL(t *testing.T) {
	_, err := NewLinkGenerator("/pay", "s3cret")
	assert.Error(t, err)
}
