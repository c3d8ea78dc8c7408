package utils

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	assert := assert_.New(t)

	assert.True(IsValidURL("https://www.douyin.com/video/123"))
	assert.True(IsValidURL("http://example.com"))

	assert.False(IsValidURL(""))
	assert.False(IsValidURL("not a url at all"))
	assert.False(IsValidURL("ftp://example.com/file"))
	assert.False(IsValidURL("7344275866215664911"))
	assert.False(IsValidURL("https://"))
}

func TestNormalizeURL(t *testing.T) {
	assert := assert_.New(t)

	// 追踪参数被剥离
	got := NormalizeURL("https://www.douyin.com/video/123?utm_source=share&utm_medium=ios")
	assert.NotContains(got, "utm_source")
	assert.NotContains(got, "utm_medium")

	// 业务参数必须保留
	got = NormalizeURL("https://www.douyin.com/discover/search/x?modal_id=7344275866215664911&utm_source=share")
	assert.Contains(got, "modal_id=7344275866215664911")
	assert.NotContains(got, "utm_source")

	// 非URL输入原样返回(只去首尾空白)
	assert.Equal("not a url at all", NormalizeURL("  not a url at all "))
	assert.Equal("7344275866215664911", NormalizeURL("7344275866215664911"))
}

func TestSanitizeString(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("中信银行 信用卡", SanitizeString("  中信银行   信用卡  "))
	assert.Equal("", SanitizeString("   "))
	assert.Equal("a b c", SanitizeString("a\tb\n c"))
}
