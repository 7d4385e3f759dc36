package node

import (
	"fmt"
	"strings"

	"ad-copy-ai-api/internal/domain/entity"
)

// PlatformProfile 单个投放渠道的格式约束
// 渠道集合通过查表保持开放，新增渠道只需追加一条记录
type PlatformProfile struct {
	// DisplayName 渠道的韩文名称
	DisplayName string
	// CharacterGuide 字数约束说明
	CharacterGuide string
	// HashtagGuide 해시태그数量说明
	HashtagGuide string
	// ToneEmphasis 渠道语气侧重
	ToneEmphasis string
	// RequiredElements 渠道必备要素
	RequiredElements string
}

var platformProfiles = map[entity.Platform]PlatformProfile{
	entity.PlatformInstagram: {
		DisplayName:      "인스타그램",
		CharacterGuide:   "본문은 125자 내외로 간결하게 작성 (최대 2,200자)",
		HashtagGuide:     "해시태그 5~10개 포함",
		ToneEmphasis:     "감성적이고 비주얼 중심의 표현, 이모지 활용",
		RequiredElements: "첫 문장에서 시선을 사로잡는 훅",
	},
	entity.PlatformFacebook: {
		DisplayName:      "페이스북",
		CharacterGuide:   "40~80자 내외 권장",
		HashtagGuide:     "해시태그 1~2개 이내",
		ToneEmphasis:     "정보 전달과 공감을 끌어내는 스토리텔링",
		RequiredElements: "공유를 유도하는 질문이나 제안",
	},
	entity.PlatformYoutube: {
		DisplayName:      "유튜브",
		CharacterGuide:   "제목은 60자 이내, 설명 첫 두 줄에 핵심 배치",
		HashtagGuide:     "해시태그 3개 내외",
		ToneEmphasis:     "클릭을 유도하는 흥미로운 표현",
		RequiredElements: "영상 시청을 유도하는 문구",
	},
	entity.PlatformBlog: {
		DisplayName:      "블로그",
		CharacterGuide:   "제목과 도입부 문단 형식, 길이 제한 없음",
		HashtagGuide:     "해시태그 대신 검색 키워드 자연스럽게 포함",
		ToneEmphasis:     "신뢰감 있는 정보성 어조",
		RequiredElements: "검색 노출을 고려한 핵심 키워드",
	},
	entity.PlatformEmail: {
		DisplayName:      "이메일",
		CharacterGuide:   "제목은 30자 이내, 본문은 150자 내외",
		HashtagGuide:     "해시태그 사용하지 않음",
		ToneEmphasis:     "개인화된 정중한 어조",
		RequiredElements: "열람을 유도하는 제목과 명확한 행동 버튼 문구",
	},
	entity.PlatformKakao: {
		DisplayName:      "카카오톡",
		CharacterGuide:   "90자 이내의 짧은 메시지",
		HashtagGuide:     "해시태그 사용하지 않음",
		ToneEmphasis:     "친근한 대화체",
		RequiredElements: "즉각적인 반응을 유도하는 한 줄 혜택",
	},
	entity.PlatformGeneral: {
		DisplayName:      "일반",
		CharacterGuide:   "100~200자 내외",
		HashtagGuide:     "필요 시 해시태그 3개 이내",
		ToneEmphasis:     "자연스럽고 매력적인 표현",
		RequiredElements: "핵심 가치가 드러나는 문장",
	},
}

// PlatformProfileFor 按渠道查表，未识别渠道回退到通用约束
func PlatformProfileFor(p entity.Platform) PlatformProfile {
	if profile, ok := platformProfiles[p]; ok {
		return profile
	}
	return platformProfiles[entity.PlatformGeneral]
}

// BuildPlatformBlock 构建渠道格式约束段
func BuildPlatformBlock(p entity.Platform) string {
	profile := PlatformProfileFor(p)
	lines := []string{
		fmt.Sprintf("플랫폼: %s", profile.DisplayName),
		"- " + profile.CharacterGuide,
		"- " + profile.HashtagGuide,
		"- " + profile.ToneEmphasis,
		"- " + profile.RequiredElements,
	}
	return strings.Join(lines, "\n")
}

var genderPhrases = map[entity.Gender]string{
	entity.GenderAll:    "전체",
	entity.GenderMale:   "남성",
	entity.GenderFemale: "여성",
	entity.GenderOther:  "기타",
}

var regionPhrases = map[entity.Region]string{
	entity.RegionAll:      "전국",
	entity.RegionSeoul:    "서울",
	entity.RegionLocal:    "지방",
	entity.RegionOverseas: "해외",
}

// BuildTargetingBlock 构建受众描述段
func BuildTargetingBlock(t entity.Targeting) string {
	gender := genderPhrases[t.Gender]
	if gender == "" {
		gender = "전체"
	}
	region := regionPhrases[t.Region]
	if region == "" {
		region = "전국"
	}

	lines := []string{
		"타겟 고객:",
		fmt.Sprintf("- 성별: %s", gender),
		fmt.Sprintf("- 연령대: %s", strings.Join(t.AgeGroups, ", ")),
		fmt.Sprintf("- 지역: %s", region),
		fmt.Sprintf("- 관심사: %s", strings.Join(t.Interests, ", ")),
	}
	return strings.Join(lines, "\n")
}

var lengthPhrases = map[entity.CopyLength]string{
	entity.LengthShort:  "짧게 (50자 내외)",
	entity.LengthMedium: "보통 (100자 내외)",
	entity.LengthLong:   "길게 (200자 내외)",
}

var tonePhrases = map[entity.Tone]string{
	entity.ToneCasual:       "친근하고 캐주얼한",
	entity.ToneProfessional: "전문적이고 신뢰감 있는",
	entity.ToneEmotional:    "감성적인",
	entity.ToneHumorous:     "유머러스한",
	entity.ToneUrgent:       "긴박감 있는",
}

var ctaPhrases = map[entity.CTAStyle]string{
	entity.CTADirect:    "직접적인 행동 유도",
	entity.CTAIndirect:  "간접적인 제안",
	entity.CTACuriosity: "호기심을 유발하는",
	entity.CTABenefit:   "혜택을 강조하는",
}

// BuildStyleBlock 构建文案风格描述段
func BuildStyleBlock(o entity.GenerateOptions) string {
	lines := []string{
		"문구 스타일:",
		fmt.Sprintf("- 길이: %s", lengthPhrases[o.Length]),
		fmt.Sprintf("- 톤앤매너: %s 어조", tonePhrases[o.Tone]),
		fmt.Sprintf("- CTA: %s 마무리", ctaPhrases[o.CTAStyle]),
	}
	return strings.Join(lines, "\n")
}

// BuildExtrasBlock 构建可选的情感关键词和禁用词指令段
// 两者都为空时返回空字符串
func BuildExtrasBlock(o entity.GenerateOptions) string {
	var lines []string
	if keywords := compact(o.EmotionKeywords); len(keywords) > 0 {
		lines = append(lines, fmt.Sprintf("다음 감성 키워드를 자연스럽게 반영해주세요: %s", strings.Join(keywords, ", ")))
	}
	if forbidden := compact(o.ForbiddenWords); len(forbidden) > 0 {
		lines = append(lines, fmt.Sprintf("다음 단어는 절대 사용하지 마세요: %s", strings.Join(forbidden, ", ")))
	}
	return strings.Join(lines, "\n")
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
