package dto

type ChatRequest struct {
	UserId  string `json:"user_id" validate:"max=255"`
	Message string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	UserId   string `json:"user_id"`
	Response string `json:"response"`
}
