package models

// All lists every table managed by migrations.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&FavoriteModel{},
		&TurfModel{},
		&BookingModel{},
		&CommentModel{},
	}
}
