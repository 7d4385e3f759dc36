package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *CopyRequest {
	return &CopyRequest{
		ValueProposition: "건강한 식습관으로 더 멋진 삶을 시작하세요",
		Targeting: Targeting{
			Gender:    GenderAll,
			AgeGroups: []string{"20s", "30s"},
			Region:    RegionSeoul,
			Interests: []string{"건강", "운동"},
		},
		Platform: PlatformInstagram,
		Options: GenerateOptions{
			Length:   LengthMedium,
			Tone:     ToneCasual,
			CTAStyle: CTADirect,
			Count:    2,
		},
	}
}

func TestValidate_ValidRequest(t *testing.T) {
	require.Empty(t, validRequest().Validate())
}

func TestValidate_ValueProposition(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{
			name:    "太短",
			value:   "짧은 문장",
			message: "가치 제언은 최소 10자 이상 입력해주세요.",
		},
		{
			name:    "修剪后太短",
			value:   "   짧은 문장   ",
			message: "가치 제언은 최소 10자 이상 입력해주세요.",
		},
		{
			name:    "太长",
			value:   strings.Repeat("가", 501),
			message: "가치 제언은 최대 500자까지 입력할 수 있습니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.ValueProposition = tt.value
			violations := req.Validate()
			require.Len(t, violations, 1)
			assert.Equal(t, tt.message, violations[0])
		})
	}
}

func TestValidate_BoundaryLengthsAccepted(t *testing.T) {
	// 按字符数而不是字节数判断，10 个韩文字符就应当通过
	req := validRequest()
	req.ValueProposition = strings.Repeat("가", 10)
	assert.Empty(t, req.Validate())

	req.ValueProposition = strings.Repeat("가", 500)
	assert.Empty(t, req.Validate())
}

func TestValidate_EnumViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CopyRequest)
		message string
	}{
		{
			name:    "未知性别",
			mutate:  func(r *CopyRequest) { r.Targeting.Gender = "unknown" },
			message: "성별 타겟이 올바르지 않습니다.",
		},
		{
			name:    "年龄段为空",
			mutate:  func(r *CopyRequest) { r.Targeting.AgeGroups = nil },
			message: "연령대를 1개 이상 선택해주세요.",
		},
		{
			name:    "年龄段全是空白",
			mutate:  func(r *CopyRequest) { r.Targeting.AgeGroups = []string{"  ", ""} },
			message: "연령대를 1개 이상 선택해주세요.",
		},
		{
			name:    "未知地域",
			mutate:  func(r *CopyRequest) { r.Targeting.Region = "mars" },
			message: "지역 타겟이 올바르지 않습니다.",
		},
		{
			name:    "兴趣为空",
			mutate:  func(r *CopyRequest) { r.Targeting.Interests = []string{} },
			message: "관심사를 1개 이상 선택해주세요.",
		},
		{
			name:    "未知长度选项",
			mutate:  func(r *CopyRequest) { r.Options.Length = "huge" },
			message: "문구 길이 옵션이 올바르지 않습니다.",
		},
		{
			name:    "未知语气选项",
			mutate:  func(r *CopyRequest) { r.Options.Tone = "angry" },
			message: "톤앤매너 옵션이 올바르지 않습니다.",
		},
		{
			name:    "未知 CTA 选项",
			mutate:  func(r *CopyRequest) { r.Options.CTAStyle = "loud" },
			message: "CTA 스타일 옵션이 올바르지 않습니다.",
		},
		{
			name:    "生成数为 0",
			mutate:  func(r *CopyRequest) { r.Options.Count = 0 },
			message: "생성 개수는 1개 이상 5개 이하로 설정해주세요.",
		},
		{
			name:    "生成数超限",
			mutate:  func(r *CopyRequest) { r.Options.Count = 6 },
			message: "생성 개수는 1개 이상 5개 이하로 설정해주세요.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			violations := req.Validate()
			require.Len(t, violations, 1)
			assert.Equal(t, tt.message, violations[0])
		})
	}
}

func TestValidate_CollectsAllViolationsInOrder(t *testing.T) {
	req := &CopyRequest{}
	violations := req.Validate()

	expected := []string{
		"가치 제언은 최소 10자 이상 입력해주세요.",
		"성별 타겟이 올바르지 않습니다.",
		"연령대를 1개 이상 선택해주세요.",
		"지역 타겟이 올바르지 않습니다.",
		"관심사를 1개 이상 선택해주세요.",
		"문구 길이 옵션이 올바르지 않습니다.",
		"톤앤매너 옵션이 올바르지 않습니다.",
		"CTA 스타일 옵션이 올바르지 않습니다.",
		"생성 개수는 1개 이상 5개 이하로 설정해주세요.",
	}
	assert.Equal(t, expected, violations)
}

func TestValidate_Deterministic(t *testing.T) {
	req := validRequest()
	req.Options.Count = 9

	first := req.Validate()
	second := req.Validate()
	assert.Equal(t, first, second)
}

func TestNormalizePlatform(t *testing.T) {
	assert.Equal(t, PlatformInstagram, NormalizePlatform("instagram"))
	assert.Equal(t, PlatformKakao, NormalizePlatform("kakao"))

	// 未识别渠道一律落到通用渠道，不算校验错误
	assert.Equal(t, PlatformGeneral, NormalizePlatform("tiktok"))
	assert.Equal(t, PlatformGeneral, NormalizePlatform(""))
	assert.Equal(t, PlatformGeneral, NormalizePlatform("Instagram"))
}
