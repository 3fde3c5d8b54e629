package dto

// AdminUserUpdateRequest captures a partial user update performed from the
// admin surface; nil fields stay unchanged.
type AdminUserUpdateRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	Group    *string `json:"group" validate:"omitempty,max=64"`
	IsActive *bool   `json:"is_active"`
}

// UserListResponse wraps a list of user profiles.
type UserListResponse struct {
	Items []UserProfile `json:"items"`
	Total int           `json:"total"`
}
