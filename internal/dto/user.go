package dto

// RegisterUserRequest 用户注册请求参数
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginUserRequest 用户登录请求参数
type LoginUserRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse carries the signed bearer token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserID is the shape of the public user listing.
type UserID struct {
	ID string `json:"id"`
}
