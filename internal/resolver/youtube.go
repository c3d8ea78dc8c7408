package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/config"
	"shortfeed/resolver-service/internal/platform"
	"shortfeed/resolver-service/internal/utils"
	"shortfeed/resolver-service/internal/video"
)

const youtubeOEmbedEndpoint = "https://www.youtube.com/oembed"

// YouTube YouTube解析器。嵌入地址和缩略图由视频ID确定性拼出，不依赖网络；
// 标题/作者通过oEmbed接口尽力补充。
type YouTube struct {
	httpClient     *http.Client
	oembedEndpoint string
	logger         *zap.Logger
}

// NewYouTube 创建YouTube解析器
func NewYouTube(cfg *config.EnrichConfig, logger *zap.Logger) *YouTube {
	return &YouTube{
		httpClient:     &http.Client{Timeout: cfg.GetTimeout()},
		oembedEndpoint: youtubeOEmbedEndpoint,
		logger:         logger,
	}
}

// YouTube链接中的视频ID模式，按常见程度排列
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([\w-]{6,})`),
	regexp.MustCompile(`youtu\.be/([\w-]{6,})`),
	regexp.MustCompile(`youtube\.com/shorts/([\w-]{6,})`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]{6,})`),
}

// extractYouTubeID 从URL中提取YouTube视频ID
func extractYouTubeID(rawInput string) (string, bool) {
	for _, p := range youtubeIDPatterns {
		if m := p.FindStringSubmatch(rawInput); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// oembedResponse oEmbed接口返回的字段(只取用到的部分)
type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// Resolve 解析YouTube链接
func (r *YouTube) Resolve(ctx context.Context, rawInput string) (video.Record, error) {
	id, ok := extractYouTubeID(rawInput)
	if !ok {
		return video.Record{}, fmt.Errorf("%w: %q", ErrNoVideoID, rawInput)
	}

	rec := video.Record{
		ID:           id,
		MediaURL:     fmt.Sprintf("https://www.youtube.com/embed/%s", id),
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id),
		Title:        "YouTube Video",
		Author:       "YouTube Channel",
		Platform:     platform.YouTube,
	}

	// 尽力补充标题和作者，失败只降级不报错
	if meta, err := r.fetchOEmbed(ctx, rawInput); err != nil {
		r.logger.Warn("youtube metadata enrichment failed",
			zap.String("url", rawInput), zap.Error(err))
	} else {
		if t := utils.SanitizeString(meta.Title); t != "" {
			rec.Title = t
		}
		if a := utils.SanitizeString(meta.AuthorName); a != "" {
			rec.Author = a
		}
	}

	return rec, nil
}

// fetchOEmbed 调用oEmbed接口获取视频元数据
func (r *YouTube) fetchOEmbed(ctx context.Context, videoURL string) (*oembedResponse, error) {
	endpoint := fmt.Sprintf("%s?url=%s&format=json", r.oembedEndpoint, url.QueryEscape(videoURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var meta oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

var _ Resolver = (*YouTube)(nil)
