package catalog

import "github.com/lunargift/giftmall/internal/domain"

// The promotional catalog. Fixed at build time; every price is zeroed for
// the promotion while OriginalPrice keeps the list price for display.
var defaultGifts = []domain.Gift{
	{
		ID:            "beef-1",
		Name:          "한우 1++ 등급 선물세트",
		Description:   "최고급 한우 1++ 등급 프리미엄",
		Price:         0,
		OriginalPrice: 200000,
		Category:      domain.CategoryHanwoo,
		Image:         "🥩",
		Tags:          []string{"프리미엄", "명절선물", "인기"},
		Rating:        4.9,
		ReviewCount:   1250,
		Stock:         50,
		IsPopular:     true,
	},
	{
		ID:            "beef-2",
		Name:          "한우 갈비 혼합세트",
		Description:   "구이용 갈비와 불고기 혼합 구성",
		Price:         0,
		OriginalPrice: 150000,
		Category:      domain.CategoryHanwoo,
		Image:         "🍖",
		Tags:          []string{"갈비", "불고기", "혼합"},
		Rating:        4.8,
		ReviewCount:   860,
		Stock:         35,
		IsPopular:     false,
		IsNew:         true,
	},
	{
		ID:            "seafood-1",
		Name:          "참굴비 선물세트",
		Description:   "영광 법성포 참굴비 20마리",
		Price:         0,
		OriginalPrice: 120000,
		Category:      domain.CategorySeafood,
		Image:         "🐟",
		Tags:          []string{"굴비", "전통", "영광"},
		Rating:        4.7,
		ReviewCount:   650,
		Stock:         40,
		IsPopular:     true,
	},
	{
		ID:            "seafood-2",
		Name:          "완도 전복 선물세트",
		Description:   "완도산 활전복 특대 10미",
		Price:         0,
		OriginalPrice: 140000,
		Category:      domain.CategorySeafood,
		Image:         "🦪",
		Tags:          []string{"전복", "완도", "활전복"},
		Rating:        4.8,
		ReviewCount:   430,
		Stock:         25,
		IsNew:         true,
	},
	{
		ID:            "fruit-1",
		Name:          "명품 사과 선물세트",
		Description:   "경북 청송 꿀사과 12과",
		Price:         0,
		OriginalPrice: 80000,
		Category:      domain.CategoryFruit,
		Image:         "🍎",
		Tags:          []string{"사과", "청송", "프리미엄"},
		Rating:        4.8,
		ReviewCount:   1100,
		Stock:         60,
		IsPopular:     true,
	},
	{
		ID:            "fruit-2",
		Name:          "샤인머스캣 선물세트",
		Description:   "김천 샤인머스캣 2kg 2수",
		Price:         0,
		OriginalPrice: 70000,
		Category:      domain.CategoryFruit,
		Image:         "🍇",
		Tags:          []string{"샤인머스캣", "김천", "포도"},
		Rating:        4.9,
		ReviewCount:   780,
		Stock:         45,
		IsNew:         true,
	},
	{
		ID:            "fruit-3",
		Name:          "나주 배 선물세트",
		Description:   "나주 신고배 특대 6과",
		Price:         0,
		OriginalPrice: 85000,
		Category:      domain.CategoryFruit,
		Image:         "🍐",
		Tags:          []string{"배", "나주", "신고배"},
		Rating:        4.9,
		ReviewCount:   920,
		Stock:         40,
		IsPopular:     true,
	},
	{
		ID:            "health-1",
		Name:          "6년근 홍삼 세트",
		Description:   "국내산 6년근 홍삼 정과",
		Price:         0,
		OriginalPrice: 130000,
		Category:      domain.CategoryHealthFood,
		Image:         "🧧",
		Tags:          []string{"홍삼", "건강", "6년근"},
		Rating:        4.9,
		ReviewCount:   2100,
		Stock:         80,
		IsPopular:     true,
	},
	{
		ID:            "health-2",
		Name:          "프리미엄 안마기 세트",
		Description:   "목 어깨 전용 무선 안마기",
		Price:         0,
		OriginalPrice: 110000,
		Category:      domain.CategoryHealthGoods,
		Image:         "💆",
		Tags:          []string{"안마기", "부모님", "건강용품"},
		Rating:        4.6,
		ReviewCount:   540,
		Stock:         30,
	},
	{
		ID:            "snack-1",
		Name:          "전통 약과 세트",
		Description:   "수제 꿀약과 전통 한과 모음",
		Price:         0,
		OriginalPrice: 45000,
		Category:      domain.CategoryDessert,
		Image:         "🍯",
		Tags:          []string{"약과", "한과", "전통"},
		Rating:        4.7,
		ReviewCount:   690,
		Stock:         70,
		IsNew:         true,
	},
	{
		ID:            "snack-2",
		Name:          "프리미엄 견과류 세트",
		Description:   "아몬드, 캐슈넛, 호두, 마카다미아",
		Price:         0,
		OriginalPrice: 65000,
		Category:      domain.CategoryHealthSnack,
		Image:         "🥜",
		Tags:          []string{"견과류", "건강간식", "프리미엄"},
		Rating:        4.7,
		ReviewCount:   890,
		Stock:         55,
		IsPopular:     true,
	},
	{
		ID:            "oil-1",
		Name:          "프리미엄 참기름 세트",
		Description:   "국산 참깨 100% 압착",
		Price:         0,
		OriginalPrice: 55000,
		Category:      domain.CategoryTraditional,
		Image:         "🫒",
		Tags:          []string{"참기름", "국산", "압착"},
		Rating:        4.8,
		ReviewCount:   890,
		Stock:         60,
		IsPopular:     true,
	},
}
