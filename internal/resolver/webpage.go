package resolver

import (
	"context"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/config"
	"shortfeed/resolver-service/internal/utils"
)

// PageMeta 网页og:标签中提取到的元数据
type PageMeta struct {
	Title    string
	Author   string
	Image    string
	SiteName string
}

// Webpage 未知平台网页的元数据抓取器。只做尽力而为的og:标签解析，
// 供未知来源的输入补充标题/作者/封面。
type Webpage struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebpage 创建网页元数据抓取器
func NewWebpage(cfg *config.EnrichConfig, logger *zap.Logger) *Webpage {
	return &Webpage{
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
		logger:     logger,
	}
}

// Fetch 抓取页面并解析og:元数据。任何失败直接返回错误，由上层决定占位值。
func (w *Webpage) Fetch(ctx context.Context, pageURL string) (*PageMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	meta := &PageMeta{}

	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = utils.SanitizeString(content)
	}
	if meta.Title == "" {
		meta.Title = utils.SanitizeString(doc.Find("title").First().Text())
	}

	if content, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		meta.SiteName = utils.SanitizeString(content)
	}
	if content, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		meta.Author = utils.SanitizeString(content)
	}
	if meta.Author == "" {
		meta.Author = meta.SiteName
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.Image = content
	}

	return meta, nil
}
