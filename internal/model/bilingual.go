package model

// Bilingual holds a Bangla and an English rendering of the same text.
// It is stored as one structured column.
type Bilingual struct {
	BN string `json:"bn"`
	EN string `json:"en"`
}

// IsZero reports whether neither language has text.
func (b Bilingual) IsZero() bool { return b.BN == "" && b.EN == "" }

// Pick prefers the English text and falls back to Bangla.
func (b Bilingual) Pick() string {
	if b.EN != "" {
		return b.EN
	}
	return b.BN
}

// BilingualList holds parallel Bangla and English lists, e.g. features.
type BilingualList struct {
	BN []string `json:"bn"`
	EN []string `json:"en"`
}

// ProductImages separates admin-panel screenshots from shop screenshots.
type ProductImages struct {
	Admin []string `json:"admin"`
	Shop  []string `json:"shop"`
}

// DemoAccess is one live-demo entry shown on a product page.
type DemoAccess struct {
	Label    Bilingual `json:"label"`
	URL      string    `json:"url"`
	Username string    `json:"username"`
	Password string    `json:"password"`
}

// FAQItem is a bilingual question/answer pair.
type FAQItem struct {
	Question Bilingual `json:"question"`
	Answer   Bilingual `json:"answer"`
}

// SEO carries per-language metadata for a product page.
type SEO struct {
	Title       Bilingual     `json:"title"`
	Description Bilingual     `json:"description"`
	Keywords    BilingualList `json:"keywords"`
}
