// Package entity 提供领域实体定义
package entity

// Gender 性别定向
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Region 地域定向
type Region string

const (
	RegionAll      Region = "all"
	RegionSeoul    Region = "seoul"
	RegionLocal    Region = "local"
	RegionOverseas Region = "overseas"
)

// Platform 投放渠道
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformYoutube   Platform = "youtube"
	PlatformBlog      Platform = "blog"
	PlatformEmail     Platform = "email"
	PlatformKakao     Platform = "kakao"
	// PlatformGeneral 未识别渠道的兜底值
	PlatformGeneral Platform = "general"
)

// CopyLength 文案长度选项
type CopyLength string

const (
	LengthShort  CopyLength = "short"
	LengthMedium CopyLength = "medium"
	LengthLong   CopyLength = "long"
)

// Tone 톤앤매너（语气风格）选项
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneEmotional    Tone = "emotional"
	ToneHumorous     Tone = "humorous"
	ToneUrgent       Tone = "urgent"
)

// CTAStyle 行动号召风格
type CTAStyle string

const (
	CTADirect    CTAStyle = "direct"
	CTAIndirect  CTAStyle = "indirect"
	CTACuriosity CTAStyle = "curiosity"
	CTABenefit   CTAStyle = "benefit"
)

// Targeting 受众定向
type Targeting struct {
	Gender    Gender
	AgeGroups []string
	Region    Region
	Interests []string
}

// GenerateOptions 文案生成选项
type GenerateOptions struct {
	Length          CopyLength
	Tone            Tone
	CTAStyle        CTAStyle
	EmotionKeywords []string
	Count           int
	ForbiddenWords  []string
}

// CopyRequest 一次文案生成请求（校验通过后不可变）
type CopyRequest struct {
	ValueProposition string
	Targeting        Targeting
	Platform         Platform
	Options          GenerateOptions
}

// NormalizePlatform 将任意字符串归一化为受支持的渠道
// 未识别的渠道落到 PlatformGeneral，由提示词层使用通用格式约束
func NormalizePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformInstagram, PlatformFacebook, PlatformYoutube,
		PlatformBlog, PlatformEmail, PlatformKakao:
		return Platform(s)
	default:
		return PlatformGeneral
	}
}
