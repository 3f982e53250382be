package dto

// LoginReq represents the request body for the /users/login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the identity block returned next to the token.
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRes is the body of a successful login.
type LoginRes struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}
