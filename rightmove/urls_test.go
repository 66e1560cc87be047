package rightmove

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailHTML(id string) string {
	return fmt.Sprintf(`<html><body>
<script>
    PAGE_MODEL = {"propertyData": {"id": %q, "bedrooms": 2, "prices": {"primaryPrice": "£200,000"}, "status": {"published": true, "archived": false}}}
</script>
</body></html>`, id)
}

func TestScrapeURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/properties/1", "/properties/2", "/properties/3", "/properties/4":
			w.Write([]byte(detailHTML(r.URL.Path[len("/properties/"):])))
		case "/properties/5":
			w.Write([]byte(`<html><body><script>PAGE_MODEL = {"propertyData": {broken</script></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/properties/1",
		srv.URL + "/properties/2",
		srv.URL + "/properties/3",
		srv.URL + "/properties/4",
		srv.URL + "/properties/5", // malformed blob, dropped at item granularity
	}

	client := NewClientWithBaseURL(srv.URL)
	properties := client.ScrapeURLs(context.Background(), urls)

	require.Len(t, properties, 4)
	seen := make(map[string]bool)
	for _, p := range properties {
		seen[string(p.ID)] = true
		require.NotNil(t, p.Available)
		assert.True(t, *p.Available)
	}
	assert.Equal(t, map[string]bool{"1": true, "2": true, "3": true, "4": true}, seen)
}

func TestScrapeURLsSkipsNonListingPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/properties/1" {
			w.Write([]byte(detailHTML("1")))
			return
		}
		w.Write([]byte(`<html><body><p>Page not found</p></body></html>`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	properties := client.ScrapeURLs(context.Background(), []string{
		srv.URL + "/properties/1",
		srv.URL + "/not-a-listing",
	})

	require.Len(t, properties, 1)
	assert.Equal(t, stringNumber("1"), properties[0].ID)
}

func TestScrapeURLsTransportFailureIsPerItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/properties/1" {
			w.Write([]byte(detailHTML("1")))
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	properties := client.ScrapeURLs(context.Background(), []string{
		srv.URL + "/properties/1",
		srv.URL + "/properties/404",
	})

	require.Len(t, properties, 1)
}
