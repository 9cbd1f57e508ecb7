// internal/stats/views.go
package stats

import "tedtam-service/internal/domain/customer"

// DashboardSummary backs the dashboard stat cards.
type DashboardSummary struct {
	TotalCustomers int     `json:"total_customers"`
	CompletedCases int     `json:"completed_cases"`
	CuredCases     int     `json:"cured_cases"`
	UrgentCases    int     `json:"urgent_cases"`
	CompletionRate float64 `json:"completion_rate"`
	CuredRate      float64 `json:"cured_rate"`
}

// Dashboard computes the stat-card summary for the current snapshot.
func Dashboard(list []customer.Customer) DashboardSummary {
	return DashboardSummary{
		TotalCustomers: len(list),
		CompletedCases: CountWhere(list, IsClosed),
		CuredCases:     CountWhere(list, HasResus(customer.ResusCured)),
		UrgentCases:    CountWhere(list, IsUrgent),
		CompletionRate: Rate(list, IsClosed),
		CuredRate:      Rate(list, HasResus(customer.ResusCured)),
	}
}

// PerformanceReport backs the performance view: overall KPIs, the resolution
// breakdown, and the branch/team groupings.
type PerformanceReport struct {
	TotalCustomers  int     `json:"total_customers"`
	CompletedCases  int     `json:"completed_cases"`
	CuredCases      int     `json:"cured_cases"`
	DRCases         int     `json:"dr_cases"`
	RepoCases       int     `json:"repo_cases"`
	TotalPrinciple  float64 `json:"total_principle"`
	TotalCommission float64 `json:"total_commission"`
	CompletionRate  float64 `json:"completion_rate"`
	CuredRate       float64 `json:"cured_rate"`

	ByBranch map[string]GroupStat `json:"by_branch"`
	ByTeam   map[string]GroupStat `json:"by_team"`
}

// Performance computes the full performance report for the current snapshot.
func Performance(list []customer.Customer) PerformanceReport {
	return PerformanceReport{
		TotalCustomers:  len(list),
		CompletedCases:  CountWhere(list, IsClosed),
		CuredCases:      CountWhere(list, HasResus(customer.ResusCured)),
		DRCases:         CountWhere(list, HasResus(customer.ResusDR)),
		RepoCases:       CountWhere(list, HasResus(customer.ResusRepo)),
		TotalPrinciple:  SumPrinciple(list),
		TotalCommission: SumCommission(list),
		CompletionRate:  Rate(list, IsClosed),
		CuredRate:       Rate(list, HasResus(customer.ResusCured)),
		ByBranch:        ByBranch(list),
		ByTeam:          ByFieldTeam(list),
	}
}

// WalletSummary backs the wallet view. Earned commission comes from closed
// cases only; the rest is pending.
type WalletSummary struct {
	TotalCommission   float64 `json:"total_commission"`
	EarnedCommission  float64 `json:"earned_commission"`
	PendingCommission float64 `json:"pending_commission"`
	CompletedCases    int     `json:"completed_cases"`

	CommissionByResus map[string]float64 `json:"commission_by_resus"`
}

// Wallet computes the commission summary for the current snapshot.
func Wallet(list []customer.Customer) WalletSummary {
	total := SumCommission(list)
	earned := SumCommissionWhere(list, IsClosed)

	byResus := make(map[string]float64)
	for i := range list {
		byResus[string(list[i].Resus)] += list[i].Commission
	}

	return WalletSummary{
		TotalCommission:   total,
		EarnedCommission:  earned,
		PendingCommission: total - earned,
		CompletedCases:    CountWhere(list, IsClosed),
		CommissionByResus: byResus,
	}
}
