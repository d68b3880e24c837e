package employee

import "time"

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	UserID       string  `json:"user_id" binding:"required,uuid"`
	Title        string  `json:"title" binding:"omitempty,oneof=Mr Mrs Mss Dr Sir Madam"`
	FirstName    string  `json:"first_name" binding:"required,max=125"`
	LastName     string  `json:"last_name" binding:"required,max=125"`
	OtherName    *string `json:"other_name" binding:"omitempty,max=125"`
	Birthday     string  `json:"birthday" binding:"required"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	RoleID       *string `json:"role_id" binding:"omitempty,uuid"`
	StartDate    *string `json:"start_date"`
	EmployeeType string  `json:"employee_type" binding:"omitempty,oneof=Full-Time Part-Time Contract Intern"`
	EmployeeCode *string `json:"employee_code" binding:"omitempty,max=32"`
	DateIssued   *string `json:"date_issued"`
}

type UpdateEmployeeRequest CreateEmployeeRequest

type ListFilter struct {
	Q        string
	Page     int
	PageSize int
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeRoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID           string                      `json:"id"`
	UserID       string                      `json:"user_id"`
	Title        string                      `json:"title,omitempty"`
	Image        string                      `json:"image"`
	FirstName    string                      `json:"first_name"`
	LastName     string                      `json:"last_name"`
	OtherName    *string                     `json:"other_name,omitempty"`
	FullName     string                      `json:"full_name"`
	Birthday     string                      `json:"birthday"`
	Age          int                         `json:"age"`
	DepartmentID string                      `json:"department_id,omitempty"`
	Department   *EmployeeDepartmentResponse `json:"department,omitempty"`
	RoleID       string                      `json:"role_id,omitempty"`
	Role         *EmployeeRoleResponse       `json:"role,omitempty"`
	StartDate    *string                     `json:"start_date,omitempty"`
	EmployeeType string                      `json:"employee_type"`
	EmployeeCode *string                     `json:"employee_code,omitempty"`
	DateIssued   *string                     `json:"date_issued,omitempty"`
	IsBlocked    bool                        `json:"is_blocked"`
	IsDeleted    bool                        `json:"is_deleted"`
	CreatedAt    string                      `json:"created_at"`
	UpdatedAt    string                      `json:"updated_at"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type ListResponse struct {
	Items []EmployeeResponse
	Total int64
}

func mapToResponse(empl Employee, now time.Time) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           empl.ID.String(),
		UserID:       empl.UserID.String(),
		Title:        string(empl.Title),
		Image:        empl.Image,
		FirstName:    empl.FirstName,
		LastName:     empl.LastName,
		OtherName:    empl.OtherName,
		FullName:     empl.FullName(),
		Birthday:     empl.Birthday.Format(dateLayout),
		Age:          empl.Age(now),
		StartDate:    formatDate(empl.StartDate),
		EmployeeType: string(empl.EmployeeType),
		EmployeeCode: empl.EmployeeCode,
		DateIssued:   formatDate(empl.DateIssued),
		IsBlocked:    empl.IsBlocked,
		IsDeleted:    empl.IsDeleted,
		CreatedAt:    formatTime(empl.CreatedAt),
		UpdatedAt:    formatTime(empl.UpdatedAt),
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.RoleID != nil {
		resp.RoleID = empl.RoleID.String()
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	if empl.Role != nil {
		resp.Role = &EmployeeRoleResponse{
			ID:   empl.Role.ID.String(),
			Name: empl.Role.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee, now time.Time) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e, now)
	}
	return res
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
