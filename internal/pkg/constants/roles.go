package constants

// Roles resolved by the access gate for a caller.
const (
	Anonymous = "anonymous"
	Owner     = "owner"
	Admin     = "admin"
)
