package marketing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ad-copy-ai-api/internal/domain/entity"
	workflowchain "ad-copy-ai-api/internal/workflow/chain"
	wfmodel "ad-copy-ai-api/internal/workflow/model"
	wfnode "ad-copy-ai-api/internal/workflow/node"
	workflowport "ad-copy-ai-api/internal/workflow/port"
	"ad-copy-ai-api/pkg/logger"
	"ad-copy-ai-api/pkg/metrics"
)

// GenerateOutput 一次文案生成的完整结果
type GenerateOutput struct {
	Copies []entity.GeneratedCopy
	// Fallback 表示模型输出未能解析为 JSON、已降级为单条文案
	Fallback  bool
	RequestID string
	Meta      wfmodel.LLMUsageMeta
}

// CopyGenerator 文案生成器：调用 LLM 并归一化输出
type CopyGenerator struct {
	chain *workflowchain.MarketingChain
}

// NewCopyGenerator 创建文案生成器
func NewCopyGenerator(factory workflowport.ChatModelFactory) *CopyGenerator {
	return &CopyGenerator{
		chain: workflowchain.NewMarketingChain(factory),
	}
}

// Generate 执行生成：调用链 -> 解析 -> 归一化
// 上游调用失败原样返回错误，由处理器归类；解析阶段永不失败。
func (g *CopyGenerator) Generate(ctx context.Context, in *wfmodel.MarketingGenerateInput) (*GenerateOutput, error) {
	if g == nil || g.chain == nil {
		return nil, fmt.Errorf("marketing workflow not configured")
	}
	if in == nil || in.Request == nil {
		return nil, fmt.Errorf("input is nil")
	}

	provider := strings.TrimSpace(in.Provider)
	modelName := strings.TrimSpace(in.Model)

	start := time.Now()
	outMsg, err := g.chain.Invoke(ctx, in)
	metrics.LLMCallDuration.WithLabelValues(provider, modelName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "error").Inc()
		return nil, err
	}
	if outMsg == nil {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "error").Inc()
		return nil, fmt.Errorf("empty llm response")
	}
	metrics.LLMCallTotal.WithLabelValues(provider, modelName, "ok").Inc()

	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "prompt").
			Add(float64(outMsg.ResponseMeta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "completion").
			Add(float64(outMsg.ResponseMeta.Usage.CompletionTokens))
	}

	outcome := ParseCopies(outMsg.Content)
	if outcome.Fallback {
		metrics.CopyParseFallbackTotal.Inc()
		logger.Warn(ctx, "llm output not parseable as json, degraded to single copy",
			"platform", string(in.Request.Platform),
			"raw", wfnode.TruncateByRunes(outMsg.Content, 200),
		)
	}

	now := time.Now().UTC()
	requestID := NewRequestID()
	copies := Normalize(outcome, in.Request.Platform, modelName, requestID, now)

	for _, c := range copies {
		metrics.CopyCharacterCount.WithLabelValues(string(c.Platform)).Observe(float64(c.CharacterCount))
	}

	meta := wfmodel.LLMUsageMeta{
		Provider:    provider,
		Model:       modelName,
		GeneratedAt: now,
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	return &GenerateOutput{
		Copies:    copies,
		Fallback:  outcome.Fallback,
		RequestID: requestID,
		Meta:      meta,
	}, nil
}
