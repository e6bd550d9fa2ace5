package saju

var dayMasterDescriptions = [NumStems]string{
	StemGap:    "큰 나무. 곧게 뻗어 오르는 기상과 고집.",
	StemEul:    "풀과 덩굴. 부드럽게 휘지만 끈질기게 살아남는다.",
	StemByeong: "태양. 숨김없이 밝고 뜨겁다.",
	StemJeong:  "촛불. 작지만 어둠 속에서 오래 탄다.",
	StemMu:     "큰 산. 묵직하고 쉽게 움직이지 않는다.",
	StemGi:     "논밭의 흙. 품고 길러내는 땅.",
	StemGyeong: "무쇠. 단단하고 결단이 빠르다.",
	StemSin:    "보석과 칼날. 예리하고 섬세하다.",
	StemIm:     "큰 강과 바다. 깊고 넓게 흐른다.",
	StemGye:    "이슬과 빗물. 조용히 스며든다.",
}

// Description returns a one-line portrait of the stem as a day-master.
func (s Stem) Description() string { return dayMasterDescriptions[s] }
