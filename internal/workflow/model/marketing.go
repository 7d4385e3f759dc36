// Package model 提供工作流层输入输出模型
package model

import (
	"time"

	"ad-copy-ai-api/internal/domain/entity"
)

// MarketingGenerateInput 文案生成工作流输入
type MarketingGenerateInput struct {
	// Request 已通过校验的生成请求
	Request *entity.CopyRequest

	Provider string
	Model    string
}

// LLMUsageMeta 一次 LLM 调用的用量元数据
type LLMUsageMeta struct {
	Provider         string
	Model            string
	Temperature      float64
	PromptTokens     int
	CompletionTokens int
	GeneratedAt      time.Time
}
