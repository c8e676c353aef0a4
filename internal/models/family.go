// ABOUTME: Family and family member models
// ABOUTME: Members are grouped by family_id

package models

// Family groups accounts that share shopping lists and meal plans
type Family struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// FamilyInput creates or renames a family
type FamilyInput struct {
	Name string `json:"name"`
}

func (in FamilyInput) Validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	return maxLen("name", in.Name, 100)
}

// FamilyMember is a person attached to a family
type FamilyMember struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	Age          int    `json:"age"`
	FamilyID     int    `json:"family_id"`
}

// Input converts a member into its update payload
func (m FamilyMember) Input() FamilyMemberInput {
	return FamilyMemberInput{
		Name:         m.Name,
		Email:        m.Email,
		Relationship: m.Relationship,
		Age:          m.Age,
		FamilyID:     m.FamilyID,
	}
}

// FamilyMemberInput creates or updates a member
type FamilyMemberInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	Age          int    `json:"age"`
	FamilyID     int    `json:"family_id"`
}

func (in FamilyMemberInput) Validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := maxLen("name", in.Name, 100); err != nil {
		return err
	}
	if in.Email != "" {
		if err := ValidateEmail("email", in.Email); err != nil {
			return err
		}
	}
	if err := required("relationship", in.Relationship); err != nil {
		return err
	}
	if in.Age < 0 || in.Age > 150 {
		return invalid("age", "must be between 0 and 150")
	}
	if in.FamilyID <= 0 {
		return invalid("family_id", "is required")
	}
	return nil
}
