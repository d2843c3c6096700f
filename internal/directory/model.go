// Package directory holds the reference data shared by profiles, careers and
// opportunities: departments and organizations.
package directory

type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:department_name;type:varchar(255);not null;uniqueIndex" json:"department_name"`
}

type Organization struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:organization_name;type:varchar(255);not null;uniqueIndex" json:"organization_name"`
	Website     *string `gorm:"type:varchar(255)" json:"website"`
	Description *string `gorm:"type:text" json:"description"`
}

type CreateDepartmentRequest struct {
	Name string `json:"department_name" binding:"required,max=255"`
}

type CreateOrganizationRequest struct {
	Name        string  `json:"organization_name" binding:"required,max=255"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	Description *string `json:"description,omitempty"`
}
