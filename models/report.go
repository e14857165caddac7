package models

import (
	"sort"
	"strconv"
	"time"
)

// ProjectReport is the derived read side of a project. Nothing in here is
// stored; it is recomputed from the project document on every request.
type ProjectReport struct {
	TotalBudget         float64        `json:"totalBudget"`
	SpentBudget         float64        `json:"spentBudget"`
	BudgetProgress      float64        `json:"budgetProgress"`
	TotalMilestones     int            `json:"totalMilestones"`
	CompletedMilestones int            `json:"completedMilestones"`
	MilestoneProgress   float64        `json:"milestoneProgress"`
	RecentActivity      []ActivityItem `json:"recentActivity"`
}

type ActivityItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	ActivityType string    `json:"activityType"`
}

const recentActivityLimit = 5

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// TotalBudget derives the budget from the pricing type: the fixed figure,
// the sum of milestone budgets, or rate times estimated hours.
func TotalBudget(p *Project) float64 {
	switch p.Pricing.Type {
	case PricingFixed:
		return parseAmount(p.Pricing.FixedBudget)
	case PricingMilestone:
		var total float64
		for _, m := range p.Milestones {
			total += parseAmount(m.Budget)
		}
		return total
	case PricingHourly:
		return parseAmount(p.Pricing.HourlyRate) * parseAmount(p.Pricing.EstimatedHours)
	}
	return 0
}

// SpentBudget counts only approved and paid payments. Pending, rejected,
// overdue and partial entries do not draw down the budget.
func SpentBudget(p *Project) float64 {
	var spent float64
	for _, pay := range p.Payments {
		if pay.Status == PaymentApproved || pay.Status == PaymentPaid {
			spent += pay.Amount
		}
	}
	return spent
}

func CompletedMilestones(p *Project) int {
	count := 0
	for _, m := range p.Milestones {
		if m.Status == MilestoneCompleted {
			count++
		}
	}
	return count
}

func MilestoneProgress(p *Project) float64 {
	total := len(p.Milestones)
	if total == 0 {
		return 0
	}
	return float64(CompletedMilestones(p)) / float64(total) * 100
}

func BudgetProgress(p *Project) float64 {
	total := TotalBudget(p)
	if total == 0 {
		return 0
	}
	return SpentBudget(p) / total * 100
}

// RecentActivity merges updates with completed milestones into one
// timeline, newest first, truncated to the five most recent entries.
func RecentActivity(p *Project) []ActivityItem {
	items := make([]ActivityItem, 0, len(p.Updates)+len(p.Milestones))
	for _, u := range p.Updates {
		items = append(items, ActivityItem{
			ID:           u.ID,
			Title:        u.Title,
			Description:  u.Description,
			CreatedAt:    u.CreatedAt,
			ActivityType: "update",
		})
	}
	for _, m := range p.Milestones {
		if m.CompletedAt == nil {
			continue
		}
		items = append(items, ActivityItem{
			ID:           m.ID,
			Title:        m.Title,
			Description:  m.Description,
			CreatedAt:    *m.CompletedAt,
			ActivityType: "milestone_completed",
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items
}

func BuildReport(p *Project) ProjectReport {
	return ProjectReport{
		TotalBudget:         TotalBudget(p),
		SpentBudget:         SpentBudget(p),
		BudgetProgress:      BudgetProgress(p),
		TotalMilestones:     len(p.Milestones),
		CompletedMilestones: CompletedMilestones(p),
		MilestoneProgress:   MilestoneProgress(p),
		RecentActivity:      RecentActivity(p),
	}
}
