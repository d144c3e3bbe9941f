package user

type User struct {
	ID   int    `json:"user_id"`
	Name string `json:"user_name"`
}

// CreateUserRequest accepts JSON or urlencoded form bodies. A missing
// user_name stays nil and reaches the store as NULL.
type CreateUserRequest struct {
	UserName *string `json:"user_name" form:"user_name"`
}
