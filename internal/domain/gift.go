package domain

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryHanwoo      Category = "한우"
	CategorySeafood     Category = "수산물"
	CategoryFruit       Category = "과일"
	CategoryHealthFood  Category = "건강식품"
	CategoryHealthGoods Category = "건강용품"
	CategoryHealthSnack Category = "건강간식"
	CategoryDessert     Category = "디저트"
	CategoryTraditional Category = "전통식품"
)

// CategoryAll is the pseudo-category accepted by catalog filters.
const CategoryAll = "all"

var Categories = []Category{
	CategoryHanwoo,
	CategorySeafood,
	CategoryFruit,
	CategoryHealthFood,
	CategoryHealthGoods,
	CategoryHealthSnack,
	CategoryDessert,
	CategoryTraditional,
}

// Gift is a catalog entry. Records are created once at startup and never
// mutated. Price is in KRW (no minor unit); the promotion zero-prices every
// gift and keeps OriginalPrice for strikethrough display. Stock is
// informational only and is never decremented.
type Gift struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"`
	Category      Category `json:"category"`
	Image         string   `json:"image"`
	Tags          []string `json:"tags"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Stock         int      `json:"stock"`
	IsPopular     bool     `json:"is_popular"`
	IsNew         bool     `json:"is_new"`
}
