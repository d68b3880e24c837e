package role

import "time"

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=125"`
	Description string `json:"description" binding:"max=125"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=125"`
	Description string `json:"description" binding:"max=125"`
}

type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func mapToResponse(role Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   formatTime(role.CreatedAt),
		UpdatedAt:   formatTime(role.UpdatedAt),
	}
}

func mapToListResponse(roles []Role) []RoleResponse {
	res := make([]RoleResponse, len(roles))
	for i, d := range roles {
		res[i] = mapToResponse(d)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
