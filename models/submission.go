package models

// Submission is the raw project-creation payload. A payload carrying a
// userId is an authenticated submission; one carrying userInfo is an
// anonymous submission from the public form.
type Submission struct {
	SubmissionID   string            `json:"submissionId,omitempty"`
	UserID         string            `json:"userId,omitempty"`
	UserInfo       *UserInfo         `json:"userInfo,omitempty"`
	ProjectDetails ProjectDetails    `json:"projectDetails"`
	Pricing        SubmissionPricing `json:"pricing"`
}

type UserInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
}

type SubmissionPricing struct {
	Type           string           `json:"type,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	FixedBudget    string           `json:"fixedBudget,omitempty"`
	HourlyRate     string           `json:"hourlyRate,omitempty"`
	EstimatedHours string           `json:"estimatedHours,omitempty"`
	Milestones     []MilestoneInput `json:"milestones,omitempty"`
}

type MilestoneInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Budget       string   `json:"budget"`
	Timeline     string   `json:"timeline"`
	Deliverables []string `json:"deliverables,omitempty"`
}

func (s *Submission) IsAuthenticated() bool {
	return s.UserID != ""
}
