package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ad-copy-ai-api/internal/domain/entity"
)

func TestPlatformProfileFor(t *testing.T) {
	// 每个受支持渠道都必须有独立档案
	for _, p := range []entity.Platform{
		entity.PlatformInstagram,
		entity.PlatformFacebook,
		entity.PlatformYoutube,
		entity.PlatformBlog,
		entity.PlatformEmail,
		entity.PlatformKakao,
		entity.PlatformGeneral,
	} {
		profile := PlatformProfileFor(p)
		assert.NotEmpty(t, profile.DisplayName, "platform %s", p)
		assert.NotEmpty(t, profile.CharacterGuide, "platform %s", p)
	}

	// 查表未命中时回退到通用档案
	unknown := PlatformProfileFor(entity.Platform("tiktok"))
	assert.Equal(t, platformProfiles[entity.PlatformGeneral], unknown)
}

func TestBuildPlatformBlock(t *testing.T) {
	block := BuildPlatformBlock(entity.PlatformInstagram)
	assert.Contains(t, block, "인스타그램")
	assert.Contains(t, block, "해시태그 5~10개")

	kakao := BuildPlatformBlock(entity.PlatformKakao)
	assert.Contains(t, kakao, "카카오톡")
	assert.NotEqual(t, block, kakao)
}

func TestBuildTargetingBlock(t *testing.T) {
	block := BuildTargetingBlock(entity.Targeting{
		Gender:    entity.GenderFemale,
		AgeGroups: []string{"20s", "30s"},
		Region:    entity.RegionSeoul,
		Interests: []string{"요가", "필라테스"},
	})

	assert.Contains(t, block, "성별: 여성")
	assert.Contains(t, block, "연령대: 20s, 30s")
	assert.Contains(t, block, "지역: 서울")
	assert.Contains(t, block, "관심사: 요가, 필라테스")
}

func TestBuildStyleBlock(t *testing.T) {
	block := BuildStyleBlock(entity.GenerateOptions{
		Length:   entity.LengthShort,
		Tone:     entity.ToneProfessional,
		CTAStyle: entity.CTABenefit,
	})

	assert.Contains(t, block, "짧게 (50자 내외)")
	assert.Contains(t, block, "전문적이고 신뢰감 있는")
	assert.Contains(t, block, "혜택을 강조하는")
}

func TestBuildExtrasBlock(t *testing.T) {
	// 都为空时不输出任何指令
	assert.Empty(t, BuildExtrasBlock(entity.GenerateOptions{}))
	assert.Empty(t, BuildExtrasBlock(entity.GenerateOptions{
		EmotionKeywords: []string{"", "  "},
	}))

	block := BuildExtrasBlock(entity.GenerateOptions{
		EmotionKeywords: []string{"설렘", "자신감"},
		ForbiddenWords:  []string{"무료", "최고"},
	})
	assert.Contains(t, block, "설렘, 자신감")
	assert.Contains(t, block, "무료, 최고")
	assert.Contains(t, block, "절대 사용하지 마세요")
	assert.Len(t, strings.Split(block, "\n"), 2)
}
