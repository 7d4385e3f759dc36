// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ad-copy-ai-api/internal/application/marketing"
	"ad-copy-ai-api/internal/config"
	"ad-copy-ai-api/internal/interfaces/http/dto"
	"ad-copy-ai-api/internal/interfaces/http/middleware"
	wfmodel "ad-copy-ai-api/internal/workflow/model"
	wfnode "ad-copy-ai-api/internal/workflow/node"
	apperrors "ad-copy-ai-api/pkg/errors"
	"ad-copy-ai-api/pkg/logger"
	"ad-copy-ai-api/pkg/metrics"
)

// MarketingHandler 营销文案生成处理器
type MarketingHandler struct {
	cfg       *config.Config
	generator *marketing.CopyGenerator
}

// NewMarketingHandler 创建营销文案处理器
func NewMarketingHandler(cfg *config.Config, generator *marketing.CopyGenerator) *MarketingHandler {
	return &MarketingHandler{
		cfg:       cfg,
		generator: generator,
	}
}

// Generate 生成营销文案
// @Summary 营销文案 생성
// @Description 가치 제언과 타겟팅 정보를 바탕으로 마케팅 문구를 생성한다
// @Tags Marketing
// @Accept json
// @Produce json
// @Param request body dto.GenerateMarketingRequest true "생성 요청"
// @Success 200 {object} dto.Response[dto.GenerateMarketingData]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/generate-marketing [post]
func (h *MarketingHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateMarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	creq := req.ToEntity()
	if violations := creq.Validate(); len(violations) > 0 {
		metrics.CopyGenerationTotal.WithLabelValues(string(creq.Platform), "invalid").Inc()
		dto.Fail(c, http.StatusBadRequest, strings.Join(violations, " "))
		return
	}

	provider, modelName, err := resolveProviderModel(h.cfg, req.Provider, req.Model)
	if err != nil {
		logger.Warn(ctx, "provider resolution failed", "error", err.Error())
		dto.Fail(c, http.StatusBadRequest, "지원하지 않는 생성 모델입니다.")
		return
	}

	start := time.Now()
	out, err := h.generator.Generate(ctx, &wfmodel.MarketingGenerateInput{
		Request:  creq,
		Provider: provider,
		Model:    modelName,
	})
	metrics.CopyGenerationDuration.WithLabelValues(string(creq.Platform)).Observe(time.Since(start).Seconds())
	if err != nil {
		appErr := wfnode.ClassifyUpstreamError(err)
		// 上游错误详情只进日志，客户端只拿到笼统消息
		logger.Error(ctx, "marketing copy generation failed", err,
			"platform", string(creq.Platform),
			"provider", provider,
			"model", modelName,
			"code", string(appErr.Code),
		)
		metrics.CopyGenerationTotal.WithLabelValues(string(creq.Platform), "error").Inc()
		dto.Fail(c, appErr.HTTPStatus, clientMessageFor(appErr.Code))
		return
	}

	metrics.CopyGenerationTotal.WithLabelValues(string(creq.Platform), "ok").Inc()

	copies := make([]dto.GeneratedCopyResponse, 0, len(out.Copies))
	for _, cp := range out.Copies {
		copies = append(copies, dto.NewGeneratedCopyResponse(cp))
	}

	dto.Success(c, dto.GenerateMarketingData{
		MarketingCopies: copies,
		GeneratedAt:     out.Meta.GeneratedAt.Format(time.RFC3339),
		RequestID:       out.RequestID,
		RateLimit:       rateLimitInfo(c, h.cfg),
	})
}

// clientMessageFor 按错误分类返回面向用户的消息
// 永远不回显 API Key 或上游原始报文。
func clientMessageFor(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.CodeUpstreamAuth:
		return "인증 정보가 유효하지 않습니다. 관리자에게 문의해주세요."
	case apperrors.CodeUpstreamRateLimit:
		return "외부 생성 서비스의 요청 한도를 초과했습니다. 잠시 후 다시 시도해주세요."
	case apperrors.CodeUpstreamUnavailable:
		return "외부 생성 서비스를 일시적으로 사용할 수 없습니다. 잠시 후 다시 시도해주세요."
	default:
		return "마케팅 문구 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	}
}

// rateLimitInfo 从限流中间件写入的 Context 状态组装响应字段
// 限流未启用时按配置给出名义值，响应结构保持不变。
func rateLimitInfo(c *gin.Context, cfg *config.Config) dto.RateLimitInfo {
	remainingVal, okRemaining := c.Get(middleware.ContextRateLimitRemaining)
	resetVal, okReset := c.Get(middleware.ContextRateLimitReset)
	if okRemaining && okReset {
		remaining, _ := remainingVal.(int)
		reset, _ := resetVal.(int64)
		return dto.RateLimitInfo{Remaining: remaining, ResetTime: reset}
	}

	limit := cfg.Security.RateLimit.Limit
	if limit <= 0 {
		limit = 10
	}
	window := cfg.Security.RateLimit.Window
	if window <= 0 {
		window = time.Minute
	}
	return dto.RateLimitInfo{
		Remaining: limit,
		ResetTime: time.Now().Add(window).Unix(),
	}
}
