package utils

import "context"

// ConcurrencyLimiter 并发限制器，用于限制同时运行的外部提取进程数
type ConcurrencyLimiter struct {
	sem chan struct{}
}

// NewConcurrencyLimiter 创建并发限制器
func NewConcurrencyLimiter(max int) *ConcurrencyLimiter {
	if max <= 0 {
		max = 1
	}
	return &ConcurrencyLimiter{
		sem: make(chan struct{}, max),
	}
}

// Acquire 获取信号量，等待期间响应ctx取消
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release 释放信号量
func (l *ConcurrencyLimiter) Release() {
	<-l.sem
}
