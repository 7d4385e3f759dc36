package node

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedJSONRe 匹配 ```json ... ``` 或 ``` ... ``` 围栏代码块
var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSONObject 尝试从模型输出中截取一个完整 JSON 对象。
// 这是一个容错逻辑：模型可能会在 JSON 前后夹杂多余文本。
// 提取策略按顺序尝试：围栏代码块 -> 首个顶层 {...} 区间。
// 第二个返回值为 false 表示没有找到可解析的 JSON。
func ExtractJSONObject(s string) (string, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", false
	}

	for _, strategy := range []func(string) (string, bool){
		extractFencedBlock,
		extractBraceSpan,
	} {
		if candidate, ok := strategy(raw); ok {
			return candidate, true
		}
	}
	return "", false
}

// extractFencedBlock 从围栏代码块中截取 JSON
func extractFencedBlock(s string) (string, bool) {
	m := fencedJSONRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	candidate := strings.TrimSpace(m[1])
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}

// extractBraceSpan 截取首个 { 到末尾 } 之间的区间
func extractBraceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	candidate := s[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}
