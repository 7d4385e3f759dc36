package marketing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-copy-ai-api/internal/domain/entity"
)

func TestParseCopies_Envelope(t *testing.T) {
	raw := `{"marketingCopies": [
		{"content": "지금 시작하세요!", "hashtags": ["#시작", "#오늘"]},
		{"content": "내일은 늦습니다.", "hashtags": []}
	]}`

	outcome := ParseCopies(raw)
	require.False(t, outcome.Fallback)
	require.Len(t, outcome.Copies, 2)
	assert.Equal(t, "지금 시작하세요!", outcome.Copies[0].Content)
	assert.Equal(t, []string{"#시작", "#오늘"}, outcome.Copies[0].Hashtags)
	assert.Equal(t, []string{}, outcome.Copies[1].Hashtags)
}

func TestParseCopies_FencedBlock(t *testing.T) {
	raw := "생성 결과입니다:\n```json\n{\"marketingCopies\": [{\"content\": \"문구 하나\"}]}\n```"

	outcome := ParseCopies(raw)
	require.False(t, outcome.Fallback)
	require.Len(t, outcome.Copies, 1)
	assert.Equal(t, "문구 하나", outcome.Copies[0].Content)
	// hashtags 缺失时补空切片，序列化永远是 [] 而不是 null
	assert.Equal(t, []string{}, outcome.Copies[0].Hashtags)
}

func TestParseCopies_SingleObjectLegacyFormat(t *testing.T) {
	raw := `{"content": "단일 문구", "hashtags": ["#하나"]}`

	outcome := ParseCopies(raw)
	require.False(t, outcome.Fallback)
	require.Len(t, outcome.Copies, 1)
	assert.Equal(t, "단일 문구", outcome.Copies[0].Content)
	assert.Equal(t, []string{"#하나"}, outcome.Copies[0].Hashtags)
}

func TestParseCopies_EmptyArrayStaysEmpty(t *testing.T) {
	// 空数组和“数组缺失”不同：空数组不走单对象兼容路径
	outcome := ParseCopies(`{"marketingCopies": []}`)
	require.False(t, outcome.Fallback)
	assert.Empty(t, outcome.Copies)
}

func TestParseCopies_ProseFallback(t *testing.T) {
	raw := "  죄송하지만 JSON 형식으로 출력하지 못했습니다. 지금 바로 시작해보세요!  "

	outcome := ParseCopies(raw)
	require.True(t, outcome.Fallback)
	require.Len(t, outcome.Copies, 1)
	assert.Equal(t, strings.TrimSpace(raw), outcome.Copies[0].Content)
	assert.Equal(t, []string{}, outcome.Copies[0].Hashtags)
}

func TestParseCopies_InvalidJSONFallback(t *testing.T) {
	outcome := ParseCopies("{broken json")
	require.True(t, outcome.Fallback)
	require.Len(t, outcome.Copies, 1)
}

func TestParseCopies_BlankContentGetsPlaceholder(t *testing.T) {
	raw := `{"marketingCopies": [{"content": "   "}, {"content": "정상 문구"}]}`

	outcome := ParseCopies(raw)
	require.Len(t, outcome.Copies, 2)
	assert.Equal(t, "마케팅 문구 1", outcome.Copies[0].Content)
	assert.Equal(t, "정상 문구", outcome.Copies[1].Content)
}

func TestNormalize(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	outcome := ParseOutcome{
		Copies: []ParsedCopy{
			{Content: "지금 시작하세요!", Hashtags: []string{"#시작"}},
			{Content: "한국어 문구", Hashtags: []string{}},
		},
	}

	copies := Normalize(outcome, entity.PlatformInstagram, "gpt-4o-mini", "req_abc", now)
	require.Len(t, copies, 2)

	for _, c := range copies {
		assert.True(t, strings.HasPrefix(c.ID, "copy_"), "id %s", c.ID)
		assert.Equal(t, entity.PlatformInstagram, c.Platform)
		assert.Equal(t, "gpt-4o-mini", c.Model)
		assert.Equal(t, "req_abc", c.RequestID)
		assert.Equal(t, now, c.GeneratedAt)
	}

	// 字数按字符数重新计算，与模型自报的数字无关
	assert.Equal(t, 9, copies[0].CharacterCount)
	assert.Equal(t, 6, copies[1].CharacterCount)

	// 同一批次内 ID 不重复
	assert.NotEqual(t, copies[0].ID, copies[1].ID)
}

func TestNormalize_CharacterCountIgnoresModelClaim(t *testing.T) {
	// 模型自报的 characterCount 在解析时被丢弃
	raw := `{"marketingCopies": [{"content": "다섯글자요", "characterCount": 9999}]}`
	outcome := ParseCopies(raw)
	require.Len(t, outcome.Copies, 1)

	copies := Normalize(outcome, entity.PlatformGeneral, "m", "req_x", time.Now().UTC())
	assert.Equal(t, 5, copies[0].CharacterCount)
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	assert.True(t, strings.HasPrefix(id, "req_"))
	assert.NotEqual(t, id, NewRequestID())
}
