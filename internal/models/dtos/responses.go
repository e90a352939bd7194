package dtos

type APIResponse struct {
	Status       string            `json:"status"`
	Code         string            `json:"code,omitempty"`
	Message      string            `json:"message"`
	Errors       map[string]string `json:"errors,omitempty"`
	ResponseTime string            `json:"response_time"`
	Data         any               `json:"data,omitempty"`
}

type RegisteredUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenStatus struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
}
