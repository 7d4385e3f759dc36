// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"ad-copy-ai-api/internal/domain/entity"
)

// GenerateMarketingRequest 文案生成请求
// 字段名与前端约定保持 camelCase
type GenerateMarketingRequest struct {
	ValueProposition  string                   `json:"valueProposition"`
	Targeting         TargetingRequest         `json:"targeting"`
	Platform          string                   `json:"platform"`
	GenerationOptions GenerationOptionsRequest `json:"generationOptions"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// TargetingRequest 受众定向参数
type TargetingRequest struct {
	Gender    string   `json:"gender"`
	AgeGroups []string `json:"ageGroups"`
	Region    string   `json:"region"`
	Interests []string `json:"interests"`
}

// GenerationOptionsRequest 生成选项参数
type GenerationOptionsRequest struct {
	Length          string   `json:"length"`
	Tone            string   `json:"tone"`
	CTAStyle        string   `json:"ctaStyle"`
	EmotionKeywords []string `json:"emotionKeywords,omitempty"`
	Count           int      `json:"count"`
	ForbiddenWords  []string `json:"forbiddenWords,omitempty"`
}

// ToEntity 转换为领域请求对象
// 未识别的渠道在这里归一化为通用渠道，校验由领域层负责。
func (r *GenerateMarketingRequest) ToEntity() *entity.CopyRequest {
	return &entity.CopyRequest{
		ValueProposition: r.ValueProposition,
		Targeting: entity.Targeting{
			Gender:    entity.Gender(r.Targeting.Gender),
			AgeGroups: r.Targeting.AgeGroups,
			Region:    entity.Region(r.Targeting.Region),
			Interests: r.Targeting.Interests,
		},
		Platform: entity.NormalizePlatform(r.Platform),
		Options: entity.GenerateOptions{
			Length:          entity.CopyLength(r.GenerationOptions.Length),
			Tone:            entity.Tone(r.GenerationOptions.Tone),
			CTAStyle:        entity.CTAStyle(r.GenerationOptions.CTAStyle),
			EmotionKeywords: r.GenerationOptions.EmotionKeywords,
			Count:           r.GenerationOptions.Count,
			ForbiddenWords:  r.GenerationOptions.ForbiddenWords,
		},
	}
}

// GeneratedCopyResponse 单条文案响应
type GeneratedCopyResponse struct {
	ID             string   `json:"id"`
	Content        string   `json:"content"`
	Platform       string   `json:"platform"`
	Hashtags       []string `json:"hashtags"`
	CharacterCount int      `json:"characterCount"`
	Model          string   `json:"model"`
	GeneratedAt    string   `json:"generatedAt"`
	RequestID      string   `json:"requestId"`
}

// RateLimitInfo 限流状态
// ResetTime 为窗口滚动的 Unix 秒，与 X-RateLimit-Reset 响应头一致
type RateLimitInfo struct {
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"resetTime"`
}

// GenerateMarketingData 文案生成成功响应数据
type GenerateMarketingData struct {
	MarketingCopies []GeneratedCopyResponse `json:"marketingCopies"`
	GeneratedAt     string                  `json:"generatedAt"`
	RequestID       string                  `json:"requestId"`
	RateLimit       RateLimitInfo           `json:"rateLimit"`
}

// NewGeneratedCopyResponse 从领域对象构建响应
func NewGeneratedCopyResponse(c entity.GeneratedCopy) GeneratedCopyResponse {
	return GeneratedCopyResponse{
		ID:             c.ID,
		Content:        c.Content,
		Platform:       string(c.Platform),
		Hashtags:       c.Hashtags,
		CharacterCount: c.CharacterCount,
		Model:          c.Model,
		GeneratedAt:    c.GeneratedAt.Format(time.RFC3339),
		RequestID:      c.RequestID,
	}
}
