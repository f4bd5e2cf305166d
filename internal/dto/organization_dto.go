package dto

type CreateOrganizationRequest struct {
	Name          string `json:"name"`
	AdminPassword string `json:"adminPassword"`
	Logo          string `json:"logo,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type OrgAuthRequest struct {
	Password string `json:"password"`
}

type ChangeOrgPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
