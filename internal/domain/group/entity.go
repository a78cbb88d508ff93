package group

// Group is an attendance group, usually one WhatsApp group or mail thread.
type Group struct {
	ID                  *int64 `json:"id"`
	Name                string `json:"name"`
	WhatsappGroupName   string `json:"whatsappGroupName,omitempty"`
	EmailSubjectPattern string `json:"emailSubjectPattern,omitempty"`
	GoogleSheetID       string `json:"googleSheetId,omitempty"`
	IsActive            *bool  `json:"isActive,omitempty"`
	EmployeeCount       int    `json:"employeeCount,omitempty"`
}

func (g Group) Key() *int64 { return g.ID }

func (g Group) Active() bool {
	return g.IsActive == nil || *g.IsActive
}
