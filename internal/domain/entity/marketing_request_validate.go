package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	valuePropositionMinRunes = 10
	valuePropositionMaxRunes = 500
	copyCountMin             = 1
	copyCountMax             = 5
)

// Validate 返回全部违反约束的韩文提示信息，顺序固定
// 返回空切片表示请求有效。同一请求多次校验结果一致。
func (r *CopyRequest) Validate() []string {
	var violations []string

	vp := strings.TrimSpace(r.ValueProposition)
	n := utf8.RuneCountInString(vp)
	switch {
	case n < valuePropositionMinRunes:
		violations = append(violations, "가치 제언은 최소 10자 이상 입력해주세요.")
	case n > valuePropositionMaxRunes:
		violations = append(violations, "가치 제언은 최대 500자까지 입력할 수 있습니다.")
	}

	switch r.Targeting.Gender {
	case GenderAll, GenderMale, GenderFemale, GenderOther:
	default:
		violations = append(violations, "성별 타겟이 올바르지 않습니다.")
	}

	if len(compactStrings(r.Targeting.AgeGroups)) == 0 {
		violations = append(violations, "연령대를 1개 이상 선택해주세요.")
	}

	switch r.Targeting.Region {
	case RegionAll, RegionSeoul, RegionLocal, RegionOverseas:
	default:
		violations = append(violations, "지역 타겟이 올바르지 않습니다.")
	}

	if len(compactStrings(r.Targeting.Interests)) == 0 {
		violations = append(violations, "관심사를 1개 이상 선택해주세요.")
	}

	switch r.Options.Length {
	case LengthShort, LengthMedium, LengthLong:
	default:
		violations = append(violations, "문구 길이 옵션이 올바르지 않습니다.")
	}

	switch r.Options.Tone {
	case ToneCasual, ToneProfessional, ToneEmotional, ToneHumorous, ToneUrgent:
	default:
		violations = append(violations, "톤앤매너 옵션이 올바르지 않습니다.")
	}

	switch r.Options.CTAStyle {
	case CTADirect, CTAIndirect, CTACuriosity, CTABenefit:
	default:
		violations = append(violations, "CTA 스타일 옵션이 올바르지 않습니다.")
	}

	if r.Options.Count < copyCountMin || r.Options.Count > copyCountMax {
		violations = append(violations, "생성 개수는 1개 이상 5개 이하로 설정해주세요.")
	}

	return violations
}

// compactStrings 去除空白项
func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
