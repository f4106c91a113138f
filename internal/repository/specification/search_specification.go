package specification

import "gorm.io/gorm"

// FullTextKeywords matches rows whose title or body contains ANY of the
// keywords, case-insensitive.
type FullTextKeywords struct {
	Keywords []string
}

func (s FullTextKeywords) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keywords) == 0 {
		return db
	}

	combined := db.Session(&gorm.Session{NewDB: true})
	for _, keyword := range s.Keywords {
		pattern := "%" + keyword + "%"
		combined = combined.Or("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	return db.Where(combined)
}

// SearchQuery matches a single free-form query against title or body.
type SearchQuery struct {
	Query string
}

func (s SearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
}
