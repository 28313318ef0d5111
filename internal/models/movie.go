package models

// Movie is a locally cached copy of catalog metadata. The id is the
// external catalog identifier; rows are lazily inserted the first time a
// user interacts with a movie, so this table is a cache of the catalog,
// not the source of truth.
type Movie struct {
	ID        string `gorm:"size:255;primaryKey" json:"id" validate:"required"`
	Title     string `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Year      int    `json:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
	PosterURL string `gorm:"size:255" json:"poster_url,omitempty" validate:"omitempty,url"`
	Overview  string `gorm:"type:text" json:"overview,omitempty"`
}
