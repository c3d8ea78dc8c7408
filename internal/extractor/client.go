package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/config"
)

// Client 外部提取进程封装器。每次调用spawn一个独立进程，把原始URL作为
// 唯一位置参数传入，从stdout读回一个JSON文档。进程间不共享任何状态。
type Client struct {
	binaryPath string
	scriptPath string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient 创建提取进程客户端
func NewClient(cfg *config.ExtractorConfig, logger *zap.Logger) *Client {
	return &Client{
		binaryPath: cfg.BinaryPath,
		scriptPath: cfg.ScriptPath,
		timeout:    cfg.GetTimeout(),
		logger:     logger,
	}
}

// buildArgs 构建命令参数
func (c *Client) buildArgs(rawURL string) []string {
	var args []string
	if c.scriptPath != "" {
		args = append(args, c.scriptPath)
	}
	args = append(args, rawURL)
	return args
}

// Run 调用提取进程并解码结果。协议约定:
//   - stdout 只承载一个JSON文档，按 Result 契约解码
//   - stderr 是自由格式诊断输出，仅用于日志，绝不参与解析
//   - 退出码0表示通道产出了结果(JSON内部仍可能是 success=false)
//
// 本方法内部不做重试，一次调用对应一次进程，重试/降级策略属于上层编排。
func (c *Client) Run(ctx context.Context, rawURL string) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binaryPath, c.buildArgs(rawURL)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// 被杀掉的提取进程可能留下继承了stdout管道的孙进程(无头浏览器等),
	// 不设WaitDelay时Wait会一直等管道关闭
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	err := cmd.Wait()

	// 超时或上游取消都会杀掉进程，统一归入超时失败
	if runCtx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeout, runCtx.Err())
	}

	if err != nil {
		reason := DiagnoseStderr(stderr.String())
		c.logger.Warn("extractor process exited with error",
			zap.String("url", rawURL),
			zap.String("reason", reason),
			zap.String("stderr", truncate(stderr.String(), 512)))
		return nil, fmt.Errorf("%w: %s: %v", ErrProcessFailed, reason, err)
	}

	var result Result
	if jsonErr := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &result); jsonErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, jsonErr)
	}

	return &result, nil
}

// truncate 截断过长的诊断文本
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
