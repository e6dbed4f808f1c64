package shared

// Asynq task types
const (
	TypeWarmProvinceTree     = "location:warm_province_tree"
	TypeWarmAllProvinceTrees = "location:warm_all_province_trees"
)

// Asynq queues
const (
	QueueLocation = "location"
	QueueDefault  = "default"
)

// WarmProvinceTreePayload yêu cầu worker rebuild snapshot cho một country.
type WarmProvinceTreePayload struct {
	CountryID int64 `json:"country_id"`
}

// Gin context keys set by the auth middleware
const (
	ContextKeyUserID    = "userID"
	ContextKeyRole      = "role"
	ContextKeyRequestID = "request_id"
)
