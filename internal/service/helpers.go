package service

import (
	"context"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// UnknownUserLabel is substituted for user references that no longer
// resolve, such as the creator of a task whose account was deleted.
const UnknownUserLabel = "Unknown"

// ActivityActor identifies the authenticated user performing an operation.
type ActivityActor struct {
	ID   uint
	Role string
	Name string
}

func nameResolver(ctx context.Context, users repository.UserRepository) dto.NameResolver {
	return func(id uint) string {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return UnknownUserLabel
		}
		return user.FullName
	}
}

func isTeacherRole(role string) bool {
	return role == models.RoleTeacher || role == models.RoleAdmin
}
