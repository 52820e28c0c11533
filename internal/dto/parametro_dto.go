package dto

type ParametroRequest struct {
	Nome string `json:"nome" validate:"required,min=1,max=100"`
}

type ParametroResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}
