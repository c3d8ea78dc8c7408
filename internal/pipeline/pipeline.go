package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/catalog"
	"shortfeed/resolver-service/internal/config"
	"shortfeed/resolver-service/internal/extractor"
	"shortfeed/resolver-service/internal/platform"
	"shortfeed/resolver-service/internal/resolver"
	"shortfeed/resolver-service/internal/utils"
	"shortfeed/resolver-service/internal/video"
)

// 未知来源和提取降级时使用的占位文案
const (
	douyinTitlePrefix = "抖音视频 #"
	douyinAuthor      = "抖音用户"
	douyinThumbnail   = "https://p.ipstatp.com/origin/tos-cn-p-0015/fallback~tplv-r00ih89hin-image.jpeg"
	unknownTitle      = "未知视频"
	unknownAuthor     = "未知来源"
)

// ExtractorRunner 外部提取进程的调用接口，便于测试替换真实进程
type ExtractorRunner interface {
	Run(ctx context.Context, rawURL string) (*extractor.Result, error)
}

// Cache 可选的记忆化缓存接口。nil表示不缓存，每次调用独立解析。
type Cache interface {
	Get(ctx context.Context, url string) (*video.Record, error)
	Set(ctx context.Context, url string, rec *video.Record) error
}

// Pipeline 视频解析管线。对外契约: Resolve永不返回错误，所有失败路径
// 最终都落在保底记录上，调用方拿到的记录一定可渲染。
type Pipeline struct {
	catalog  *catalog.Catalog
	runner   ExtractorRunner
	youtube  *resolver.YouTube
	bilibili *resolver.Bilibili
	webpage  *resolver.Webpage
	cache    Cache
	limiter  *utils.ConcurrencyLimiter
	logger   *zap.Logger
}

// Option 管线选项
type Option func(*Pipeline)

// WithCache 注入记忆化缓存
func WithCache(c Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithRand 注入保底选择的随机源(测试用固定种子)
func WithRand(rng *rand.Rand) Option {
	return func(p *Pipeline) {
		p.catalog = catalog.New(p.catalog.All(), rng)
	}
}

// New 创建解析管线
func New(cfg *config.Config, cat *catalog.Catalog, runner ExtractorRunner, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		catalog:  cat,
		runner:   runner,
		youtube:  resolver.NewYouTube(&cfg.Enrich, logger),
		bilibili: resolver.NewBilibili(&cfg.Enrich, logger),
		webpage:  resolver.NewWebpage(&cfg.Enrich, logger),
		limiter:  utils.NewConcurrencyLimiter(cfg.Extractor.MaxConcurrent),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve 解析单个输入。状态机:
//
//	分类 → { 静态表命中 → 返回
//	       | 短视频平台 → 外部提取 → { 成功 → 返回 | 失败 → 保底 }
//	       | 平台API → { 成功 → 返回 | 失败 → 通用记录 } }
//
// 任何输入(包括空串和非URL垃圾)都会得到一条完整记录，错误不会越过此边界。
func (p *Pipeline) Resolve(ctx context.Context, rawInput string) video.Record {
	rawInput = utils.NormalizeURL(rawInput)

	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, rawInput); err == nil {
			p.logger.Info("cache hit", zap.String("url", rawInput))
			return *cached
		}
	}

	plat := platform.Classify(rawInput)
	p.logger.Info("resolving video",
		zap.String("url", rawInput),
		zap.String("platform", string(plat)))

	var rec video.Record
	switch plat {
	case platform.Douyin:
		rec = p.resolveShortVideo(ctx, rawInput)
	case platform.YouTube:
		rec = p.resolvePlatformAPI(ctx, rawInput, p.youtube, plat)
	case platform.Bilibili:
		rec = p.resolvePlatformAPI(ctx, rawInput, p.bilibili, plat)
	default:
		rec = p.resolveUnknown(ctx, rawInput)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, rawInput, &rec); err != nil {
			p.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	return rec
}

// ResolveBatch 批量解析。各输入彼此隔离: 单个输入的失败或降级不影响
// 其他输入，输出顺序与输入顺序一致。进程并发量由limiter统一约束。
func (p *Pipeline) ResolveBatch(ctx context.Context, rawInputs []string) []video.Record {
	results := make([]video.Record, len(rawInputs))

	var wg sync.WaitGroup
	for i, raw := range rawInputs {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()
			results[i] = p.Resolve(ctx, raw)
		}(i, raw)
	}
	wg.Wait()

	return results
}

// SampleFeed 返回预置目录的全部记录，用于首页示例feed
func (p *Pipeline) SampleFeed() []video.Record {
	return p.catalog.All()
}

// resolveShortVideo 短视频平台分支。静态表永远先于外部进程: 表命中
// 零成本且内容经过筛选，外部进程只在表未命中时才值得付出代价。
func (p *Pipeline) resolveShortVideo(ctx context.Context, rawInput string) video.Record {
	knownID, found := platform.ExtractID(rawInput)
	if found {
		if rec, hit := p.catalog.Lookup(knownID); hit {
			p.logger.Info("static table hit", zap.String("id", knownID))
			return rec
		}
	}

	if err := p.limiter.Acquire(ctx); err != nil {
		p.logger.Warn("resolve cancelled before extraction, serving fallback",
			zap.String("url", rawInput), zap.Error(err))
		return p.catalog.Fallback(knownID)
	}
	defer p.limiter.Release()

	result, err := p.runner.Run(ctx, rawInput)
	if err != nil {
		p.logger.Warn("extraction failed, serving fallback",
			zap.String("url", rawInput),
			zap.String("known_id", knownID),
			zap.Error(err))
		return p.catalog.Fallback(knownID)
	}

	if !result.Success || result.URL == "" {
		p.logger.Warn("extractor reported failure, serving fallback",
			zap.String("url", rawInput),
			zap.String("extractor_error", result.Error))
		if result.ID != "" {
			return p.catalog.Fallback(result.ID)
		}
		return p.catalog.Fallback(knownID)
	}

	id := result.ID
	if id == "" {
		id = knownID
	}
	if id == "" {
		id = uuid.NewString()
	}

	rec := video.Record{
		ID:           id,
		MediaURL:     result.URL,
		ThumbnailURL: result.Thumbnail,
		Title:        utils.SanitizeString(result.Title),
		Author:       utils.SanitizeString(result.Author),
		Platform:     platform.Douyin,
	}
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = douyinThumbnail
	}
	if rec.Title == "" {
		rec.Title = douyinTitlePrefix + id
	}
	if rec.Author == "" {
		rec.Author = douyinAuthor
	}

	p.logger.Info("extraction success",
		zap.String("id", rec.ID),
		zap.String("url", truncateURL(rec.MediaURL)))
	return rec
}

// resolvePlatformAPI 稳定公开接口平台分支(YouTube/B站)。解析器只在
// 输入不属于该平台时失败，此时退化为通用记录而不是短视频保底。
func (p *Pipeline) resolvePlatformAPI(ctx context.Context, rawInput string, r resolver.Resolver, plat platform.Platform) video.Record {
	rec, err := r.Resolve(ctx, rawInput)
	if err != nil {
		p.logger.Warn("platform resolver failed, serving generic record",
			zap.String("url", rawInput),
			zap.String("platform", string(plat)),
			zap.Error(err))
		return p.genericRecord(ctx, rawInput, plat)
	}
	return rec
}

// resolveUnknown 未知平台分支。纯数字输入按短视频ID处理(搜索deep link
// 的裸ID形态)；其余合法URL原样透传并尽力补充og:元数据；非URL垃圾
// 没有可播放的内容可指向，直接走保底。
func (p *Pipeline) resolveUnknown(ctx context.Context, rawInput string) video.Record {
	if _, found := platform.ExtractID(rawInput); found {
		return p.resolveShortVideo(ctx, rawInput)
	}

	if !utils.IsValidURL(rawInput) {
		p.logger.Warn("unresolvable input, serving fallback", zap.String("input", rawInput))
		return p.catalog.Fallback("")
	}

	return p.genericRecord(ctx, rawInput, platform.Unknown)
}

// genericRecord 构造未知来源的透传记录: 媒体地址保持原输入，
// 标题/作者用og:元数据尽力补充，失败则落占位文案。
func (p *Pipeline) genericRecord(ctx context.Context, rawInput string, plat platform.Platform) video.Record {
	rec := video.Record{
		ID:       uuid.NewString(),
		MediaURL: rawInput,
		Title:    unknownTitle,
		Author:   unknownAuthor,
		Platform: plat,
	}

	if meta, err := p.webpage.Fetch(ctx, rawInput); err != nil {
		p.logger.Warn("webpage metadata enrichment failed",
			zap.String("url", rawInput), zap.Error(err))
	} else {
		if meta.Title != "" {
			rec.Title = meta.Title
		}
		if meta.Author != "" {
			rec.Author = meta.Author
		}
		rec.ThumbnailURL = meta.Image
	}

	return rec
}

// truncateURL 日志里只保留媒体地址前缀，签名参数没有日志价值
func truncateURL(u string) string {
	if len(u) <= 100 {
		return u
	}
	return fmt.Sprintf("%s...", u[:100])
}
