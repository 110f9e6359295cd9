package domain

import "strings"

// carTypeLabels maps accepted spreadsheet labels to car types.
// Both the stored code and the Korean display label are accepted.
var carTypeLabels = map[string]CarType{
	"COMPACT":    CarTypeCompact,
	"MID_SIZE":   CarTypeMidSize,
	"LARGE":      CarTypeLarge,
	"SPORTS_CAR": CarTypeSportsCar,
	"SUV":        CarTypeSUV,
	"경차":         CarTypeCompact,
	"세단":         CarTypeMidSize,
	"대형":         CarTypeLarge,
	"스포츠카":       CarTypeSportsCar,
}

var carTypeDisplay = map[CarType]string{
	CarTypeCompact:   "경차",
	CarTypeMidSize:   "세단",
	CarTypeLarge:     "대형",
	CarTypeSportsCar: "스포츠카",
	CarTypeSUV:       "SUV",
}

var genderLabels = map[string]Gender{
	"male":   GenderMale,
	"female": GenderFemale,
	"MALE":   GenderMale,
	"FEMALE": GenderFemale,
}

var ageGroupLabels = map[string]AgeGroup{
	"10대": AgeGroupTeen,
	"20대": AgeGroupTwenties,
	"30대": AgeGroupThirties,
	"40대": AgeGroupForties,
	"50대": AgeGroupFifties,
	"60대": AgeGroupSixties,
	"70대": AgeGroupSeventies,
	"80대": AgeGroupEighties,
}

// ageGroupAliases accepts the range notation some spreadsheets use.
var ageGroupAliases = map[string]string{
	"10-20": "10대",
	"20-30": "20대",
	"30-40": "30대",
	"40-50": "40대",
	"50-60": "50대",
	"60-70": "60대",
	"70-80": "70대",
	"80-90": "80대",
}

var regionLabels = map[string]Region{
	"서울": RegionSeoul,
	"경기": RegionGyeonggi,
	"인천": RegionIncheon,
	"강원": RegionGangwon,
	"충북": RegionChungbuk,
	"충남": RegionChungnam,
	"세종": RegionSejong,
	"대전": RegionDaejeon,
	"전북": RegionJeonbuk,
	"전남": RegionJeonnam,
	"광주": RegionGwangju,
	"경북": RegionGyeongbuk,
	"경남": RegionGyeongnam,
	"대구": RegionDaegu,
	"울산": RegionUlsan,
	"부산": RegionBusan,
	"제주": RegionJeju,
}

// ParseCarType maps a label such as "SUV" or "세단" to a CarType.
func ParseCarType(label string) (CarType, bool) {
	t, ok := carTypeLabels[strings.TrimSpace(label)]
	return t, ok
}

// Label returns the Korean display label of the car type.
func (t CarType) Label() string {
	if l, ok := carTypeDisplay[t]; ok {
		return l
	}
	return string(t)
}

// ParseGender accepts "male"/"female" in all lower or all upper case.
func ParseGender(label string) (Gender, bool) {
	g, ok := genderLabels[strings.TrimSpace(label)]
	return g, ok
}

// ParseAgeGroup accepts "30대" style labels, "30-40" ranges and the stored codes.
func ParseAgeGroup(label string) (AgeGroup, bool) {
	key := strings.TrimSpace(label)
	if alias, ok := ageGroupAliases[key]; ok {
		key = alias
	}
	if g, ok := ageGroupLabels[key]; ok {
		return g, true
	}
	for _, g := range ageGroupLabels {
		if string(g) == key {
			return g, true
		}
	}
	return "", false
}

// ParseRegion accepts the short Korean region name ("서울") or the stored code.
func ParseRegion(label string) (Region, bool) {
	key := strings.TrimSpace(label)
	if r, ok := regionLabels[key]; ok {
		return r, true
	}
	for _, r := range regionLabels {
		if string(r) == key {
			return r, true
		}
	}
	return "", false
}
