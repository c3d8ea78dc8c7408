package utils

import "errors"

var (
	// ErrInvalidURL URL格式无效
	ErrInvalidURL = errors.New("invalid URL")
	// ErrCacheMiss 缓存未命中
	ErrCacheMiss = errors.New("cache miss")
)
