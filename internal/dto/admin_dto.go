// FILE: internal/dto/admin_dto.go
package dto

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
}

type AdminGiftListResponse struct {
	Total int            `json:"total"`
	Gifts []GiftResponse `json:"gifts"`
}
