package platform

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert := assert_.New(t)

	cases := map[string]Platform{
		"https://www.douyin.com/video/7344275866215664911":          Douyin,
		"https://v.douyin.com/abc123/":                              Douyin,
		"https://www.tiktok.com/@user/video/7344275866215664911":    Douyin,
		"https://vm.tiktok.com/ZMabc/":                              Douyin,
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":               YouTube,
		"https://youtu.be/dQw4w9WgXcQ":                              YouTube,
		"https://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ":               YouTube,
		"https://www.bilibili.com/video/BV1xx411c7mD":               Bilibili,
		"https://example.com/some/page":                             Unknown,
		"not a url at all":                                          Unknown,
		"":                                                          Unknown,
		"7344275866215664911":                                       Unknown,
	}

	for input, want := range cases {
		assert.Equal(want, Classify(input), "input: %q", input)
	}
}

func TestClassify_Pure(t *testing.T) {
	assert := assert_.New(t)

	// 纯函数: 同一输入重复分类结果必须稳定
	input := "https://www.douyin.com/discover/search/x?modal_id=123&type=general"
	first := Classify(input)
	for i := 0; i < 100; i++ {
		assert.Equal(first, Classify(input))
	}
}

func TestExtractID(t *testing.T) {
	assert := assert_.New(t)

	// 搜索页深链中的modal_id
	id, found := ExtractID("https://www.douyin.com/discover/search/%E4%B8%AD%E4%BF%A1?aid=a72dd233-9221-4b77-a0ce-c998d41d8e35&modal_id=7344275866215664911&type=general")
	assert.True(found)
	assert.Equal("7344275866215664911", id)

	// /video/路径段
	id, found = ExtractID("https://www.douyin.com/video/12345")
	assert.True(found)
	assert.Equal("12345", id)

	// 裸数字ID
	id, found = ExtractID("7481136540689779987")
	assert.True(found)
	assert.Equal("7481136540689779987", id)

	// modal_id优先于/video/路径
	id, found = ExtractID("https://www.douyin.com/video/111?modal_id=222")
	assert.True(found)
	assert.Equal("222", id)
}

func TestExtractID_NotFound(t *testing.T) {
	assert := assert_.New(t)

	for _, input := range []string{
		"not a url at all",
		"",
		"https://www.douyin.com/discover",
		"https://example.com/video/abc",
		"123abc",
	} {
		_, found := ExtractID(input)
		assert.False(found, "input: %q", input)
	}
}
