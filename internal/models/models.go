package models

// All returns every model registered for schema migration, in dependency
// order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Movie{},
		&UserMovieInteraction{},
		&Review{},
		&MovieList{},
		&ListItem{},
	}
}
