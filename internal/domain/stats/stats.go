package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const (
	HeatmapFirstHour = 8
	HeatmapLastHour  = 22
	HeatmapHours     = HeatmapLastHour - HeatmapFirstHour + 1
	DailySeriesDays  = 7
)

var hundred = decimal.NewFromInt(100)

type Window struct {
	Revenue decimal.Decimal `json:"revenue"`
	Clients int             `json:"clients"`
}

func (w *Window) add(e models.QueueEntry) {
	w.Revenue = w.Revenue.Add(e.ServicePrice)
	w.Clients++
}

type ServiceStat struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ExpenseSummary struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

type GoalProgress struct {
	DailyPercent   float64         `json:"daily_percent"`
	MonthlyPercent float64         `json:"monthly_percent"`
	NetProfit      decimal.Decimal `json:"net_profit"`
}

type Dashboard struct {
	Today     Window `json:"today"`
	Week      Window `json:"week"`
	Month     Window `json:"month"`
	LastMonth Window `json:"last_month"`

	AvgTicket     decimal.Decimal `json:"avg_ticket"`
	RevenueGrowth float64         `json:"revenue_growth"`

	Services       []ServiceStat  `json:"services"`
	PaymentMethods map[string]int `json:"payment_methods"`

	NewClients       int `json:"new_clients"`
	RecurringClients int `json:"recurring_clients"`

	// [weekday][hour-8], Sunday = 0
	Heatmap [7][HeatmapHours]int `json:"heatmap"`

	DailyRevenue []DailyRevenue `json:"daily_revenue"`
	Expenses     ExpenseSummary `json:"expenses"`
	Goals        GoalProgress   `json:"goals"`
}

type Input struct {
	// Completed history. Entries not in done are ignored.
	Entries []models.QueueEntry
	// Expenses of the current calendar month.
	Expenses []models.Expense
	Goals    finance.Goals
	// Now carries the barbershop location used for "today" and the heatmap.
	Now time.Time
}

// Compute builds the dashboard. It never divides by zero: undefined ratios
// are reported as zero.
func Compute(in Input) Dashboard {
	now := in.Now
	loc := now.Location()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -30)
	lastMonthStart := now.AddDate(0, 0, -60)

	d := Dashboard{
		AvgTicket:      decimal.Zero,
		PaymentMethods: map[string]int{},
		Services:       []ServiceStat{},
	}

	done := make([]models.QueueEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		if e.Status == string(queue.StatusDone) {
			done = append(done, e)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].EffectiveTime().Before(done[j].EffectiveTime())
	})

	services := map[string]*ServiceStat{}
	seen := map[string]bool{}

	for _, e := range done {
		ts := e.EffectiveTime()

		// cohort is decided over the whole history
		key := crm.NormalizePhone(e.Phone)
		recurring := key != "" && seen[key]
		if key != "" {
			seen[key] = true
		}

		if ts.After(now) {
			continue
		}

		if !ts.Before(todayStart) {
			d.Today.add(e)
		}
		if !ts.Before(weekStart) {
			d.Week.add(e)
		}
		if !ts.Before(lastMonthStart) && ts.Before(monthStart) {
			d.LastMonth.add(e)
		}
		if ts.Before(monthStart) {
			continue
		}

		d.Month.add(e)

		s, ok := services[e.ServiceName]
		if !ok {
			s = &ServiceStat{Name: e.ServiceName, Revenue: decimal.Zero}
			services[e.ServiceName] = s
		}
		s.Count++
		s.Revenue = s.Revenue.Add(e.ServicePrice)

		if e.PaymentMethod != "" {
			d.PaymentMethods[e.PaymentMethod]++
		}

		if recurring {
			d.RecurringClients++
		} else {
			d.NewClients++
		}

		local := ts.In(loc)
		if h := local.Hour(); h >= HeatmapFirstHour && h <= HeatmapLastHour {
			d.Heatmap[int(local.Weekday())][h-HeatmapFirstHour]++
		}
	}

	for _, s := range services {
		d.Services = append(d.Services, *s)
	}
	sort.Slice(d.Services, func(i, j int) bool {
		if !d.Services[i].Revenue.Equal(d.Services[j].Revenue) {
			return d.Services[i].Revenue.GreaterThan(d.Services[j].Revenue)
		}
		return d.Services[i].Name < d.Services[j].Name
	})

	if d.Month.Clients > 0 {
		d.AvgTicket = d.Month.Revenue.Div(decimal.NewFromInt(int64(d.Month.Clients))).Round(2)
	}
	d.RevenueGrowth = percent(d.Month.Revenue.Sub(d.LastMonth.Revenue), d.LastMonth.Revenue)

	d.DailyRevenue = dailySeries(done, todayStart, now)
	d.Expenses = summarizeExpenses(in.Expenses)

	d.Goals = GoalProgress{
		DailyPercent:   percent(d.Today.Revenue, in.Goals.DailyGoal),
		MonthlyPercent: percent(d.Month.Revenue, in.Goals.MonthlyGoal),
		NetProfit:      d.Month.Revenue.Sub(d.Expenses.Total).Sub(in.Goals.FixedCosts),
	}

	return d
}

func dailySeries(done []models.QueueEntry, todayStart, now time.Time) []DailyRevenue {
	out := make([]DailyRevenue, DailySeriesDays)
	for i := 0; i < DailySeriesDays; i++ {
		day := todayStart.AddDate(0, 0, i-(DailySeriesDays-1))
		next := day.AddDate(0, 0, 1)

		rev := decimal.Zero
		for _, e := range done {
			ts := e.EffectiveTime()
			if !ts.Before(day) && ts.Before(next) && !ts.After(now) {
				rev = rev.Add(e.ServicePrice)
			}
		}
		out[i] = DailyRevenue{Date: day.Format("02/01/2006"), Revenue: rev}
	}
	return out
}

func summarizeExpenses(expenses []models.Expense) ExpenseSummary {
	s := ExpenseSummary{Total: decimal.Zero, ByCategory: map[string]decimal.Decimal{}}
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = string(finance.CategoryGeneral)
		}
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory[cat] = s.ByCategory[cat].Add(e.Amount)
	}
	return s
}

func percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Mul(hundred).Div(whole).Round(1).Float64()
	return f
}
