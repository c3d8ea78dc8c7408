package catalog

import (
	"math/rand"
	"sync"

	"shortfeed/resolver-service/internal/platform"
	"shortfeed/resolver-service/internal/video"
)

// Catalog 预置视频目录: 人工筛选过的 id->记录 静态映射，外加保底候选列表。
// 初始化后只读，可在并发解析间无锁共享；随机源单独加锁。
type Catalog struct {
	table   map[string]video.Record
	entries []video.Record

	mu  sync.Mutex
	rng *rand.Rand
}

// New 用给定候选列表创建目录。rng可为nil，此时使用全局随机源。
// entries中的每条记录同时进入静态表(按ID索引)和保底候选列表。
func New(entries []video.Record, rng *rand.Rand) *Catalog {
	table := make(map[string]video.Record, len(entries))
	list := make([]video.Record, 0, len(entries))
	for _, e := range entries {
		if !e.Complete() {
			// 不完整的候选会破坏对外的保底承诺，直接跳过
			continue
		}
		table[e.ID] = e
		list = append(list, e)
	}
	if len(list) == 0 {
		// 空目录无法兑现保底承诺，退回内置条目
		return New(DefaultEntries(), rng)
	}
	return &Catalog{
		table:   table,
		entries: list,
		rng:     rng,
	}
}

// Lookup 按平台原生ID查询静态表。未命中返回 found=false，从不报错。
func (c *Catalog) Lookup(id string) (video.Record, bool) {
	rec, ok := c.table[id]
	return rec, ok
}

// Fallback 保底选择: 所有解析策略都失败后兜底返回一条可用记录。
// 已知ID命中静态表时优先返回对应条目(保留仅存的有效信息)，
// 否则从候选列表中均匀随机挑选。该方法永不失败。
func (c *Catalog) Fallback(knownID string) video.Record {
	if knownID != "" {
		if rec, ok := c.table[knownID]; ok {
			return rec
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rng != nil {
		return c.entries[c.rng.Intn(len(c.entries))]
	}
	return c.entries[rand.Intn(len(c.entries))]
}

// All 返回全部候选记录的副本，用于首页示例feed
func (c *Catalog) All() []video.Record {
	out := make([]video.Record, len(c.entries))
	copy(out, c.entries)
	return out
}

// Size 候选条目数
func (c *Catalog) Size() int {
	return len(c.entries)
}

// DefaultEntries 内置的预置视频列表。媒体地址指向稳定可播放的替身资源，
// 保证在上游平台不可用时feed仍然有内容可渲染。
func DefaultEntries() []video.Record {
	return []video.Record{
		{
			ID:           "7344275866215664911",
			MediaURL:     "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-576p.mp4",
			ThumbnailURL: "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-HD.jpg",
			Title:        "中信银行信用卡免息分期",
			Author:       "中信银行信用卡",
			Platform:     platform.Douyin,
		},
		{
			ID:           "7497182026555002147",
			MediaURL:     "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-576p.mp4",
			ThumbnailURL: "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-HD.jpg",
			Title:        "中信银行信用卡在线申请",
			Author:       "中信银行信用卡",
			Platform:     platform.Douyin,
		},
		{
			ID:           "7491993233560472842",
			MediaURL:     "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-576p.mp4",
			ThumbnailURL: "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-HD.jpg",
			Title:        "中信银行信用卡优惠活动",
			Author:       "中信银行信用卡",
			Platform:     platform.Douyin,
		},
		{
			ID:           "7481136540689779987",
			MediaURL:     "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-576p.mp4",
			ThumbnailURL: "https://cdn.plyr.io/static/demo/View_From_A_Blue_Moon_Trailer-HD.jpg",
			Title:        "中信银行信用卡年度账单",
			Author:       "中信银行信用卡",
			Platform:     platform.Douyin,
		},
	}
}

// Default 使用内置条目创建目录
func Default() *Catalog {
	return New(DefaultEntries(), nil)
}
