package node

import (
	"context"
	"errors"
	"strings"

	apperrors "ad-copy-ai-api/pkg/errors"
)

func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "response_format"):
		return true
	case strings.Contains(msg, "json_schema"):
		return true
	case strings.Contains(msg, "unknown parameter") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "invalid") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "response_schema"):
		return true
	case strings.Contains(msg, "failed to parse"):
		return true
	default:
		return false
	}
}

// ClassifyUpstreamError 将上游 LLM 调用错误归入错误分类
// 认证失败 -> 401，上游限流 -> 429，上游不可用/超时 -> 503，
// 其余无法归类的错误返回 LLM 调用失败（500）。
func ClassifyUpstreamError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.CodeUpstreamUnavailable, "upstream call timed out")
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "status code: 401", "invalid api key", "incorrect api key", "unauthorized", "authentication"):
		return apperrors.Wrap(err, apperrors.CodeUpstreamAuth, "upstream credentials rejected")
	case containsAny(msg, "status code: 429", "rate limit", "rate_limit", "insufficient_quota", "quota exceeded"):
		return apperrors.Wrap(err, apperrors.CodeUpstreamRateLimit, "upstream rate limit exceeded")
	case containsAny(msg, "status code: 500", "status code: 502", "status code: 503", "status code: 504",
		"timeout", "deadline exceeded", "connection refused", "connection reset", "no such host",
		"service unavailable", "overloaded"):
		return apperrors.Wrap(err, apperrors.CodeUpstreamUnavailable, "upstream service unavailable")
	default:
		return apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "LLM call failed")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
