package platform

import "regexp"

// 视频ID提取模式，按优先级排列:
// 1. 搜索页深链中的 modal_id 参数
// 2. /video/<数字> 路径段
// 3. 整个输入就是纯数字ID
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`modal_id=(\d+)`),
	regexp.MustCompile(`/video/(\d+)`),
	regexp.MustCompile(`^(\d+)$`),
}

// ExtractID 从任意输入中提取平台原生视频ID。纯函数，不做任何I/O。
// 未匹配到任何模式时返回 found=false，调用方应转入其他解析策略而不是报错。
func ExtractID(rawInput string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(rawInput); m != nil {
			return m[1], true
		}
	}
	return "", false
}
