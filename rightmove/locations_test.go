package rightmove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenise(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"manchester", "MA/NC/HE/ST/ER"},
		{"leeds", "LE/ED/S"},
		{"ab", "AB"},
		{"a", "A"},
		{"", ""},
		{"York", "YO/RK"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenise(tc.in))
		})
	}
}

func TestFindLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/typeAhead/uknostreet/MA/NC/HE/ST/ER/", r.URL.Path)
		w.Write([]byte(`{
			"typeAheadLocations": [
				{"locationIdentifier": "REGION^904", "normalisedSearchTerm": "MANCHESTER"},
				{"locationIdentifier": "REGION^20564", "normalisedSearchTerm": "MANCHESTER CITY CENTRE"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	ids, err := client.FindLocations(context.Background(), "manchester")
	require.NoError(t, err)
	assert.Equal(t, []string{"REGION^904", "REGION^20564"}, ids)
}

func TestFindLocationsNoPredictions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"typeAheadLocations": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	ids, err := client.FindLocations(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFindLocationsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.FindLocations(context.Background(), "manchester")
	require.Error(t, err)
}
