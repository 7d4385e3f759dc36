// Package marketing 提供营销文案生成的应用服务
package marketing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ad-copy-ai-api/internal/domain/entity"
	wfnode "ad-copy-ai-api/internal/workflow/node"
)

// ParsedCopy 从模型输出中解析出的单条文案
type ParsedCopy struct {
	Content  string
	Hashtags []string
}

// ParseOutcome 解析结果的标记联合：要么解析成功，要么降级
// 解析永远不向调用方返回错误，模型输出是不可信的文本
type ParseOutcome struct {
	Copies []ParsedCopy
	// Fallback 为 true 时整段原始文本被当作单条文案
	Fallback bool
}

type rawCopy struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// ParseCopies 从模型原始输出中解析文案列表
// 提取失败或 JSON 非法时降级：整段修剪后的文本作为一条文案，해시태그为空。
func ParseCopies(raw string) ParseOutcome {
	jsonText, ok := wfnode.ExtractJSONObject(raw)
	if !ok {
		return fallbackOutcome(raw)
	}

	// marketingCopies 用指针区分“数组缺失”和“空数组”
	var envelope struct {
		MarketingCopies *[]rawCopy `json:"marketingCopies"`
		Content         string     `json:"content"`
		Hashtags        []string   `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(jsonText), &envelope); err != nil {
		return fallbackOutcome(raw)
	}

	if envelope.MarketingCopies != nil {
		copies := make([]ParsedCopy, 0, len(*envelope.MarketingCopies))
		for i, rc := range *envelope.MarketingCopies {
			copies = append(copies, ParsedCopy{
				Content:  defaultContent(rc.Content, i),
				Hashtags: defaultHashtags(rc.Hashtags),
			})
		}
		return ParseOutcome{Copies: copies}
	}

	// 兼容旧格式：对象本身就是一条文案
	return ParseOutcome{
		Copies: []ParsedCopy{{
			Content:  defaultContent(envelope.Content, 0),
			Hashtags: defaultHashtags(envelope.Hashtags),
		}},
	}
}

func fallbackOutcome(raw string) ParseOutcome {
	return ParseOutcome{
		Copies: []ParsedCopy{{
			Content:  strings.TrimSpace(raw),
			Hashtags: []string{},
		}},
		Fallback: true,
	}
}

func defaultContent(content string, index int) string {
	if strings.TrimSpace(content) == "" {
		return fmt.Sprintf("마케팅 문구 %d", index+1)
	}
	return content
}

func defaultHashtags(hashtags []string) []string {
	if hashtags == nil {
		return []string{}
	}
	return hashtags
}

// Normalize 将解析结果归一化为领域对象
// ID、RequestID、GeneratedAt 在此分配，CharacterCount 永远按内容重新计算。
func Normalize(outcome ParseOutcome, platform entity.Platform, modelName, requestID string, now time.Time) []entity.GeneratedCopy {
	copies := make([]entity.GeneratedCopy, 0, len(outcome.Copies))
	for _, pc := range outcome.Copies {
		copies = append(copies, entity.GeneratedCopy{
			ID:             newCopyID(now),
			Content:        pc.Content,
			Platform:       platform,
			Hashtags:       pc.Hashtags,
			CharacterCount: utf8.RuneCountInString(pc.Content),
			Model:          modelName,
			GeneratedAt:    now,
			RequestID:      requestID,
		})
	}
	return copies
}

// newCopyID 生成“时间戳+随机后缀”形式的文案 ID
func newCopyID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("copy_%d_%s", now.UnixMilli(), suffix)
}

// NewRequestID 生成请求 ID
func NewRequestID() string {
	return "req_" + uuid.NewString()
}
