package identity

// Credentials is the body of both sign up and sign in.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DesignerResponse is the public view of a designer account.
type DesignerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SessionResponse is returned on sign in. Token goes in the Authorization header as a
// bearer token, or in the access_token query parameter for websockets.
type SessionResponse struct {
	Designer DesignerResponse `json:"designer"`
	Token    string           `json:"token"`
}
