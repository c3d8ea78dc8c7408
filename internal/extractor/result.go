package extractor

// Result 提取进程通过stdout返回的JSON契约。来自进程的数据一律视为不可信:
// 任何字段都可能缺失，缺失的可选字段由上层补默认值，不构成解析失败。
type Result struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Source    string `json:"source"`
	Error     string `json:"error"`
}
