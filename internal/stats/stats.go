// internal/stats/stats.go
//
// Pure aggregation over an in-memory case list. Every function is total and
// side-effect free: safe to call on every snapshot refresh, and an empty list
// always yields zeros, never NaN.
package stats

import "tedtam-service/internal/domain/customer"

// Predicate selects a subset of cases.
type Predicate func(c *customer.Customer) bool

// KeyFunc extracts a grouping key from a case. Key equality is exact string
// match; no case or whitespace normalization is applied.
type KeyFunc func(c *customer.Customer) string

// CountWhere counts cases matching the predicate.
func CountWhere(list []customer.Customer, pred Predicate) int {
	n := 0
	for i := range list {
		if pred(&list[i]) {
			n++
		}
	}
	return n
}

// Rate returns matching/total as a percentage in [0,100].
// A zero-length list has rate 0.
func Rate(list []customer.Customer, pred Predicate) float64 {
	if len(list) == 0 {
		return 0
	}
	return float64(CountWhere(list, pred)) / float64(len(list)) * 100
}

// SumPrinciple sums the loan principal over the whole list.
func SumPrinciple(list []customer.Customer) float64 {
	return SumPrincipleWhere(list, nil)
}

// SumPrincipleWhere sums principal over the subset matching pred
// (nil means all).
func SumPrincipleWhere(list []customer.Customer, pred Predicate) float64 {
	var sum float64
	for i := range list {
		if pred == nil || pred(&list[i]) {
			sum += list[i].Principle
		}
	}
	return sum
}

// SumCommission sums commission over the whole list.
func SumCommission(list []customer.Customer) float64 {
	return SumCommissionWhere(list, nil)
}

// SumCommissionWhere sums commission over the subset matching pred
// (nil means all).
func SumCommissionWhere(list []customer.Customer, pred Predicate) float64 {
	var sum float64
	for i := range list {
		if pred == nil || pred(&list[i]) {
			sum += list[i].Commission
		}
	}
	return sum
}

// Common predicates.

func IsClosed(c *customer.Customer) bool {
	return c.WorkStatus == customer.WorkStatusClosed
}

func HasResus(r customer.Resus) Predicate {
	return func(c *customer.Customer) bool { return c.Resus == r }
}

// IsUrgent marks cases still needing field attention.
func IsUrgent(c *customer.Customer) bool {
	return c.WorkStatus == customer.WorkStatusFieldVisit || c.WorkStatus == customer.WorkStatusUnresolved
}

// GroupStat is the per-group aggregate used by the performance view.
type GroupStat struct {
	Key            string  `json:"key"`
	Count          int     `json:"count"`
	CompletedCount int     `json:"completed_count"`
	PrincipleSum   float64 `json:"principle_sum"`
	CommissionSum  float64 `json:"commission_sum"`
}

// CompletionRate returns the group's completed share as a percentage,
// 0 for an empty group.
func (g *GroupStat) CompletionRate() float64 {
	if g.Count == 0 {
		return 0
	}
	return float64(g.CompletedCount) / float64(g.Count) * 100
}

// GroupBy partitions the list by key and aggregates each partition. The sum
// of group counts always equals len(list).
func GroupBy(list []customer.Customer, key KeyFunc) map[string]GroupStat {
	groups := make(map[string]GroupStat)
	for i := range list {
		c := &list[i]
		k := key(c)
		g := groups[k]
		g.Key = k
		g.Count++
		if IsClosed(c) {
			g.CompletedCount++
		}
		g.PrincipleSum += c.Principle
		g.CommissionSum += c.Commission
		groups[k] = g
	}
	return groups
}

// ByBranch groups cases by branch name.
func ByBranch(list []customer.Customer) map[string]GroupStat {
	return GroupBy(list, func(c *customer.Customer) string { return c.Branch })
}

// ByFieldTeam groups cases by field team.
func ByFieldTeam(list []customer.Customer) map[string]GroupStat {
	return GroupBy(list, func(c *customer.Customer) string { return c.FieldTeam })
}
