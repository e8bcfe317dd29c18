package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"movielog/internal/omdb"
)

// NewOMDbServer starts a fake OMDb endpoint serving movies. It answers title
// (t), IMDb ID (i), and search (s) lookups and rejects any key other than
// apiKey the way OMDb does.
func NewOMDbServer(t testing.TB, apiKey string, movies ...omdb.Movie) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		if q.Get("apikey") != apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}

		switch {
		case q.Get("t") != "":
			for _, m := range movies {
				if strings.EqualFold(m.Title, q.Get("t")) {
					m.Response = "True"
					writeJSON(w, m)
					return
				}
			}
		case q.Get("i") != "":
			for _, m := range movies {
				if m.IMDbID == q.Get("i") {
					m.Response = "True"
					writeJSON(w, m)
					return
				}
			}
		case q.Get("s") != "":
			var results []omdb.SearchResult
			for _, m := range movies {
				if strings.Contains(strings.ToLower(m.Title), strings.ToLower(q.Get("s"))) {
					results = append(results, omdb.SearchResult{Title: m.Title, Year: m.Year, IMDbID: m.IMDbID, Type: m.Type, Poster: m.Poster})
				}
			}
			if len(results) > 0 {
				writeJSON(w, map[string]any{
					"Search":       results,
					"totalResults": strconv.Itoa(len(results)),
					"Response":     "True",
				})
				return
			}
		}
		writeJSON(w, map[string]string{"Response": "False", "Error": "Movie not found!"})
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
