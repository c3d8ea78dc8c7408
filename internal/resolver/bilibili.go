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

const bilibiliViewEndpoint = "https://api.bilibili.com/x/web-interface/view"

// Bilibili B站解析器。播放器嵌入地址由bvid确定性拼出；
// 标题/作者/封面通过公开的view接口尽力补充。
type Bilibili struct {
	httpClient  *http.Client
	apiEndpoint string
	logger      *zap.Logger
}

// NewBilibili 创建B站解析器
func NewBilibili(cfg *config.EnrichConfig, logger *zap.Logger) *Bilibili {
	return &Bilibili{
		httpClient:  &http.Client{Timeout: cfg.GetTimeout()},
		apiEndpoint: bilibiliViewEndpoint,
		logger:      logger,
	}
}

// B站视频路径中的bvid(或旧式av号)
var bilibiliIDPattern = regexp.MustCompile(`/video/(BV[0-9A-Za-z]+|av\d+)`)

// extractBilibiliID 从URL中提取B站视频ID
func extractBilibiliID(rawInput string) (string, bool) {
	if m := bilibiliIDPattern.FindStringSubmatch(rawInput); m != nil {
		return m[1], true
	}
	return "", false
}

// viewResponse view接口返回的字段(只取用到的部分)
type viewResponse struct {
	Data struct {
		Title string `json:"title"`
		Pic   string `json:"pic"`
		Owner struct {
			Name string `json:"name"`
		} `json:"owner"`
	} `json:"data"`
}

// Resolve 解析B站链接
func (r *Bilibili) Resolve(ctx context.Context, rawInput string) (video.Record, error) {
	bvid, ok := extractBilibiliID(rawInput)
	if !ok {
		return video.Record{}, fmt.Errorf("%w: %q", ErrNoVideoID, rawInput)
	}

	rec := video.Record{
		ID:       bvid,
		MediaURL: fmt.Sprintf("https://player.bilibili.com/player.html?bvid=%s&page=1&high_quality=1&danmaku=0", bvid),
		Title:    "Bilibili Video",
		Author:   "Bilibili User",
		Platform: platform.Bilibili,
	}

	// 尽力补充元数据，失败只降级不报错
	if meta, err := r.fetchView(ctx, bvid); err != nil {
		r.logger.Warn("bilibili metadata enrichment failed",
			zap.String("bvid", bvid), zap.Error(err))
	} else {
		if t := utils.SanitizeString(meta.Data.Title); t != "" {
			rec.Title = t
		}
		if a := utils.SanitizeString(meta.Data.Owner.Name); a != "" {
			rec.Author = a
		}
		rec.ThumbnailURL = meta.Data.Pic
	}

	return rec, nil
}

// fetchView 调用B站公开view接口获取视频元数据
func (r *Bilibili) fetchView(ctx context.Context, bvid string) (*viewResponse, error) {
	endpoint := fmt.Sprintf("%s?bvid=%s", r.apiEndpoint, url.QueryEscape(bvid))

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
		return nil, fmt.Errorf("view api status %d", resp.StatusCode)
	}

	var meta viewResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

var _ Resolver = (*Bilibili)(nil)
