package auth

import (
	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		RealName:    u.RealName,
		Phone:       u.Phone,
		Email:       u.Email,
		Role:        string(u.Role),
		DeptID:      u.DeptID,
		TeamID:      u.TeamID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
