package employee

type Employee struct {
	ID           *int64 `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	WhatsappName string `json:"whatsappName,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	GroupID      *int64 `json:"groupId,omitempty"`
	GroupName    string `json:"groupName,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

func (e Employee) Key() *int64 { return e.ID }

// Active treats a missing flag as active, matching the backend default.
func (e Employee) Active() bool {
	return e.IsActive == nil || *e.IsActive
}
