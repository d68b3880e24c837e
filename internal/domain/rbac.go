package domain

// EnforceRequest asks whether role may perform action on resource. UserID is
// carried for logging only; permissions are granted per role.
type EnforceRequest struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PolicyResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
