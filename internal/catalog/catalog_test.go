package catalog

import (
	"math/rand"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"shortfeed/resolver-service/internal/platform"
	"shortfeed/resolver-service/internal/video"
)

func testEntries() []video.Record {
	return []video.Record{
		{ID: "111", MediaURL: "https://cdn.example.com/a.mp4", Title: "视频A", Author: "作者A", Platform: platform.Douyin},
		{ID: "222", MediaURL: "https://cdn.example.com/b.mp4", Title: "视频B", Author: "作者B", Platform: platform.Douyin},
	}
}

func TestCatalog_Lookup(t *testing.T) {
	assert := assert_.New(t)

	c := New(testEntries(), nil)

	rec, found := c.Lookup("111")
	assert.True(found)
	assert.Equal("视频A", rec.Title)

	_, found = c.Lookup("999")
	assert.False(found)
}

func TestCatalog_Fallback_KnownIDWins(t *testing.T) {
	assert := assert_.New(t)

	c := New(testEntries(), rand.New(rand.NewSource(1)))

	// 已知ID命中静态表时必须返回对应条目而不是随机挑选
	for i := 0; i < 20; i++ {
		assert.Equal("222", c.Fallback("222").ID)
	}
}

func TestCatalog_Fallback_RandomFromCandidates(t *testing.T) {
	assert := assert_.New(t)

	c := New(testEntries(), rand.New(rand.NewSource(42)))

	// 未知ID: 结果必须来自候选集且完整
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec := c.Fallback("999")
		assert.True(rec.Complete())
		assert.Contains([]string{"111", "222"}, rec.ID)
		seen[rec.ID] = true
	}
	// 均匀随机在50次内应当覆盖两个候选
	assert.Len(seen, 2)
}

func TestCatalog_Fallback_SingleCandidateIsDeterministic(t *testing.T) {
	assert := assert_.New(t)

	only := testEntries()[:1]
	c := New(only, nil)

	for i := 0; i < 10; i++ {
		assert.Equal("111", c.Fallback("").ID)
	}
}

func TestCatalog_IncompleteEntriesAreDropped(t *testing.T) {
	assert := assert_.New(t)

	entries := append(testEntries(), video.Record{ID: "333", Title: "没有媒体地址"})
	c := New(entries, nil)

	assert.Equal(2, c.Size())
	_, found := c.Lookup("333")
	assert.False(found)
}

func TestCatalog_EmptyFallsBackToBuiltins(t *testing.T) {
	assert := assert_.New(t)

	c := New(nil, nil)
	assert.Equal(len(DefaultEntries()), c.Size())
	assert.True(c.Fallback("").Complete())
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	assert := assert_.New(t)

	c := New(testEntries(), nil)
	all := c.All()
	all[0].Title = "改掉"

	rec, _ := c.Lookup("111")
	assert.Equal("视频A", rec.Title)
}

func TestDefaultEntries_Complete(t *testing.T) {
	assert := assert_.New(t)

	for _, e := range DefaultEntries() {
		assert.True(e.Complete(), "entry %s", e.ID)
		assert.Equal(platform.Douyin, e.Platform)
	}
}
