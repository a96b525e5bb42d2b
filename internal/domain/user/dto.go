package user

type RegisterDTO struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateReviewPermissionDTO struct {
	CanReview *bool `json:"can_review" binding:"required"`
}
