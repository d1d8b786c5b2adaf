package favorites

// Mongo layout
const (
	CollectionName = "favorites"
	fieldUserID    = "userId"
	fieldRecipeID  = "recipeId"
	fieldSavedAt   = "savedAt"
)

// Error messages
const (
	ErrMsgConnectFailed = "failed to connect to mongodb"
	ErrMsgIndexFailed   = "failed to create favorites index"
	ErrMsgUpsertFailed  = "failed to save favorite"
	ErrMsgListFailed    = "failed to list favorites"
	ErrMsgDeleteFailed  = "failed to delete favorite"
)

// Log messages
const (
	LogMsgFavoriteSaved   = "Favorite saved"
	LogMsgFavoriteDeleted = "Favorite deleted"
	LogMsgStoreOpened     = "Favorites store opened"
)
