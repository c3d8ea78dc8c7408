package video

import "shortfeed/resolver-service/internal/platform"

// Record 解析产出的视频记录，feed层直接消费该JSON结构
type Record struct {
	ID           string            `json:"id"`
	MediaURL     string            `json:"mediaUrl"`
	ThumbnailURL string            `json:"thumbnailUrl"`
	Title        string            `json:"title"`
	Author       string            `json:"author"`
	Platform     platform.Platform `json:"platform"`
}

// Complete 检查记录是否满足对外契约(id/mediaUrl/title/author非空)
func (r Record) Complete() bool {
	return r.ID != "" && r.MediaURL != "" && r.Title != "" && r.Author != ""
}
