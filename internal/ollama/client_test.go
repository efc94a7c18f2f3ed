package ollama

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/require"
)

const tagsFixture = `{
  "models": [
    {"name": "deepseek-r1:32b", "size": 19851337728, "details": {"quantization_level": "Q4_K_M"}},
    {"name": "qwen3:latest", "size": 5225388032, "details": {}}
  ]
}`

func newTagsServer(t *testing.T) *httptest.Server {
    t.Helper()
    mux := http.NewServeMux()
    mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(tagsFixture))
    })
    srv := httptest.NewServer(mux)
    t.Cleanup(srv.Close)
    return srv
}

func TestList(t *testing.T) {
    srv := newTagsServer(t)
    c := NewClient(srv.URL + "/") // trailing slash must be tolerated
    models, err := c.List(context.Background())
    require.NoError(t, err)
    require.Len(t, models, 2)
    require.Equal(t, "deepseek-r1:32b", models[0].Name)
    require.Equal(t, "Q4_K_M", models[0].Quantization)
    require.Equal(t, "19.85 GB", models[0].SizeGB())
    require.Equal(t, "unknown", models[1].Quantization)
}

func TestVerify(t *testing.T) {
    srv := newTagsServer(t)
    c := NewClient(srv.URL)
    ok, err := c.Verify(context.Background(), "qwen3:latest")
    require.NoError(t, err)
    require.True(t, ok)
    ok, err = c.Verify(context.Background(), "llama3:8b")
    require.NoError(t, err)
    require.False(t, ok)
}

func TestListUnreachable(t *testing.T) {
    c := NewClient("http://127.0.0.1:1") // nothing listens here
    _, err := c.List(context.Background())
    require.Error(t, err)
    require.Contains(t, err.Error(), "unreachable")
}

func TestListServerError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "boom", http.StatusInternalServerError)
    }))
    defer srv.Close()
    _, err := NewClient(srv.URL).List(context.Background())
    require.Error(t, err)
}
