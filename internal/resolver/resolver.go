package resolver

import (
	"context"
	"errors"

	"shortfeed/resolver-service/internal/video"
)

// ErrNoVideoID 无法从输入中提取该平台的视频ID，说明输入并不属于该平台
var ErrNoVideoID = errors.New("no video id in input")

// Resolver 平台解析器接口。只在ID无法提取时返回错误；
// 元数据补充失败只会降级为占位标题/作者，不会导致整体失败。
type Resolver interface {
	Resolve(ctx context.Context, rawInput string) (video.Record, error)
}
