package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	// KeyDeviceID identifies an anonymous device scope for unauthenticated
	// discovery (seen-set only; saving requires a user identity).
	KeyDeviceID CtxKey = "DeviceID"
)
