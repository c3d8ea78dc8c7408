package extractor

import (
	"errors"
	"strings"
)

// 提取进程失败分级
var (
	ErrLaunchFailed    = errors.New("extractor launch failed")
	ErrTimeout         = errors.New("extractor timeout")
	ErrProcessFailed   = errors.New("extractor process failed")
	ErrMalformedOutput = errors.New("extractor produced malformed output")
)

// DiagnoseStderr 从提取进程的stderr中识别已知失败原因，仅用于日志诊断，
// 不参与stdout的解析，也不改变上层的降级决策。
func DiagnoseStderr(stderr string) string {
	lower := strings.ToLower(stderr)

	switch {
	case strings.Contains(lower, "video unavailable"), strings.Contains(lower, "无法获取视频"):
		return "video_unavailable"
	case strings.Contains(lower, "private"):
		return "video_private"
	case strings.Contains(lower, "not available in your country"):
		return "geo_restricted"
	case strings.Contains(lower, "captcha"), strings.Contains(lower, "验证码"):
		return "captcha_challenge"
	case strings.Contains(lower, "timed out"), strings.Contains(lower, "timeout"):
		return "upstream_timeout"
	case strings.Contains(lower, "no such file"), strings.Contains(lower, "not found"):
		return "missing_dependency"
	default:
		return "unknown"
	}
}
