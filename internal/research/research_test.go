package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *GoogleSearcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewGoogleSearcher(context.Background(), "test-key", "test-cx",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return s
}

func TestGoogleSearcher_Search(t *testing.T) {
	var gotQuery, gotCx, gotNum string
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCx = r.URL.Query().Get("cx")
		gotNum = r.URL.Query().Get("num")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"title":" Interview tips ","link":"https://a.example/tips","snippet":"Prepare STAR stories"},
			{"title":"Duplicate","link":"https://a.example/tips"},
			{"title":"Salary guide","link":"https://b.example/salary"}
		]}`)
	})

	results, err := s.Search(context.Background(), "how do I\nprepare   for interviews", 3)
	require.NoError(t, err)

	assert.Equal(t, "how do I prepare for interviews", gotQuery)
	assert.Equal(t, "test-cx", gotCx)
	assert.Equal(t, "3", gotNum)
	require.Len(t, results, 2)
	assert.Equal(t, "Interview tips", results[0].Title)
	assert.Equal(t, "https://b.example/salary", results[1].Link)
}

func TestGoogleSearcher_ServerError(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})

	_, err := s.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestGoogleSearcher_EmptyQuery(t *testing.T) {
	called := false
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	results, err := s.Search(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.False(t, called)
}

func TestNewGoogleSearcher_RequiresCredentials(t *testing.T) {
	_, err := NewGoogleSearcher(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestQuery_Truncates(t *testing.T) {
	long := strings.Repeat("entrevista ", 60)
	q := Query(long)

	assert.LessOrEqual(t, len([]rune(q)), maxQueryRunes)
	assert.False(t, strings.HasSuffix(q, " "))
	assert.True(t, strings.HasPrefix(q, "entrevista entrevista"))
}

func TestFormatResults(t *testing.T) {
	out := FormatResults([]Result{
		{Title: "One", Link: "https://one.example", Snippet: "first"},
		{Title: "Two", Link: "https://two.example"},
	})

	assert.Equal(t, "[1] One\nhttps://one.example\nfirst\n\n[2] Two\nhttps://two.example", out)
	assert.Equal(t, "", FormatResults(nil))
}
