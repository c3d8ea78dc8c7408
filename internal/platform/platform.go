package platform

import "regexp"

// Platform 平台标签
type Platform string

const (
	Douyin   Platform = "douyin"
	YouTube  Platform = "youtube"
	Bilibili Platform = "bilibili"
	Unknown  Platform = "unknown"
)

// rule 平台匹配规则
type rule struct {
	platform Platform
	pattern  *regexp.Regexp
}

// 按优先级排列的规则表。分享短链(v.douyin.com/vm.tiktok.com)与完整链接
// 一并归入短视频平台。必须保持有序切片而不是map，保证同一输入的分类结果稳定。
var rules = []rule{
	{Douyin, regexp.MustCompile(`(?i)(v\.douyin\.com|douyin\.com|iesdouyin\.com|vm\.tiktok\.com|tiktok\.com)`)},
	{YouTube, regexp.MustCompile(`(?i)(youtube\.com|youtu\.be)`)},
	{Bilibili, regexp.MustCompile(`(?i)(bilibili\.com|b23\.tv)`)},
}

// Classify 检测输入字符串所属平台。对任意输入都返回一个标签，从不报错:
// 未命中任何规则时返回 Unknown，由上层决定后续策略。
func Classify(rawInput string) Platform {
	for _, r := range rules {
		if r.pattern.MatchString(rawInput) {
			return r.platform
		}
	}
	return Unknown
}
