package order

import "github.com/shopspring/decimal"

// Summary is the slice of an order the aggregator needs.
type Summary struct {
	Status   Status
	TotalBDT decimal.Decimal
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Revenue   decimal.Decimal
}

// ComputeStats counts orders by status.  Revenue is the sum of total_bdt
// over every order, whatever its status, so cancelled orders still count.
func ComputeStats(orders []Summary) Stats {
	st := Stats{Total: len(orders), Revenue: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case Pending:
			st.Pending++
		case Confirmed:
			st.Confirmed++
		case Completed:
			st.Completed++
		}
		st.Revenue = st.Revenue.Add(o.TotalBDT)
	}
	return st
}
