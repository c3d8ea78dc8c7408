package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/config"
	"shortfeed/resolver-service/internal/platform"
)

func newTestYouTube() *YouTube {
	return NewYouTube(&config.EnrichConfig{Timeout: 2}, zap.NewNop())
}

func TestExtractYouTubeID(t *testing.T) {
	assert := assert_.New(t)

	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s":  "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=xyz":                "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/abcdEF123_-":         "abcdEF123_-",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":          "dQw4w9WgXcQ",
	}
	for input, want := range cases {
		id, ok := extractYouTubeID(input)
		assert.True(ok, "input: %q", input)
		assert.Equal(want, id, "input: %q", input)
	}

	_, ok := extractYouTubeID("https://www.youtube.com/")
	assert.False(ok)
}

func TestYouTube_Resolve_DeterministicURLs(t *testing.T) {
	assert := assert_.New(t)

	r := newTestYouTube()
	// 指向打不开的端口: 补充请求注定失败, 嵌入地址和缩略图必须确定性存在
	r.oembedEndpoint = "http://127.0.0.1:1"
	rec, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	assert.NoError(err)
	assert.Equal("dQw4w9WgXcQ", rec.ID)
	assert.Equal("https://www.youtube.com/embed/dQw4w9WgXcQ", rec.MediaURL)
	assert.Equal("https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", rec.ThumbnailURL)
	assert.Equal(platform.YouTube, rec.Platform)
	assert.True(rec.Complete())
}

func TestYouTube_Resolve_Enrichment(t *testing.T) {
	assert := assert_.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Never Gonna Give You Up", "author_name": "Rick Astley"}`))
	}))
	defer srv.Close()

	r := newTestYouTube()
	r.oembedEndpoint = srv.URL

	rec, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	assert.NoError(err)
	assert.Equal("Never Gonna Give You Up", rec.Title)
	assert.Equal("Rick Astley", rec.Author)
}

func TestYouTube_Resolve_EnrichmentFailureDegrades(t *testing.T) {
	assert := assert_.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := newTestYouTube()
	r.oembedEndpoint = srv.URL

	rec, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	// 补充失败不影响整体解析, 落占位文案
	assert.NoError(err)
	assert.Equal("YouTube Video", rec.Title)
	assert.Equal("YouTube Channel", rec.Author)
	assert.True(rec.Complete())
}

func TestYouTube_Resolve_NoID(t *testing.T) {
	assert := assert_.New(t)

	r := newTestYouTube()
	_, err := r.Resolve(context.Background(), "https://www.youtube.com/feed/trending")

	assert.ErrorIs(err, ErrNoVideoID)
}
