package rightmove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<!DOCTYPE html>
<html><head><title>3 bed house</title>
<script>window.adInfo = {};</script>
</head><body>
<script>
    PAGE_MODEL = {"propertyData": {"id": "131207309", "bedrooms": 3}, "metadata": {"deviceType": "DESKTOP"}}
</script>
</body></html>`

func TestExtractPropertyData(t *testing.T) {
	data, err := extractPropertyData(listingHTML)
	require.NoError(t, err)

	obj, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "131207309", obj["id"])
}

func TestExtractPropertyDataNotListingPage(t *testing.T) {
	html := `<html><body><script>var other = 1;</script><p>search results</p></body></html>`

	_, err := extractPropertyData(html)
	assert.ErrorIs(t, err, ErrNotListingPage)
}

func TestExtractPropertyDataMalformedBlob(t *testing.T) {
	html := `<html><body><script>PAGE_MODEL = {"propertyData": {broken</script></body></html>`

	_, err := extractPropertyData(html)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotListingPage)
}

func TestExtractPropertyDataMissingPropertyData(t *testing.T) {
	html := `<html><body><script>PAGE_MODEL = {"metadata": {}}</script></body></html>`

	_, err := extractPropertyData(html)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotListingPage)
}
