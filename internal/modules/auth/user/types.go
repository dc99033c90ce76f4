package user

type registerDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateMeDTO struct {
	Name *string `json:"name"`
	Mail *string `json:"mail"`
}
