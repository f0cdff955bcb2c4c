package auth

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Mail     string `json:"mail"     binding:"omitempty,email"`
}
