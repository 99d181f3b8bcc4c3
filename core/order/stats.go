package order

import (
	"fmt"
	"sort"
	"time"
)

type SalesPoint struct {
	Date  string `json:"fecha"`
	Total int    `json:"total"`
}

type MonthPoint struct {
	Month string `json:"mes"`
	Total int    `json:"total"`
}

type DailyReport struct {
	Data       []SalesPoint `json:"datos"`
	TotalSold  int          `json:"totalVendido"`
	OrderCount int          `json:"cantidadOrdenes"`
	Period     string       `json:"periodo"`
}

type MonthlyReport struct {
	Data       []MonthPoint `json:"datos"`
	TotalSold  int          `json:"totalVendido"`
	OrderCount int          `json:"cantidadOrdenes"`
	Period     string       `json:"periodo"`
}

type Overview struct {
	TotalOrders int `json:"totalOrdenes"`
	MonthOrders int `json:"ordenesMesActual"`
	MonthSales  int `json:"ventasMesActual"`
}

var semesterMonths = []string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio"}

// RecentSales groups order totals by calendar day over the last `days`
// days ending at `now`, zero-filling days without sales. Orders outside
// the window are ignored, so callers may pass an unfiltered list.
func RecentSales(orders []Order, now time.Time, days int) DailyReport {
	byDay := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		byDay[day] = 0
	}

	count := 0
	for _, ord := range orders {
		day := ord.CreatedAt.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			continue
		}
		byDay[day] += ord.Total
		count++
	}

	data := make([]SalesPoint, 0, len(byDay))
	total := 0
	for day, sold := range byDay {
		data = append(data, SalesPoint{Date: day, Total: sold})
		total += sold
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Date < data[j].Date })

	return DailyReport{
		Data:       data,
		TotalSold:  total,
		OrderCount: count,
		Period:     fmt.Sprintf("Últimos %d días", days),
	}
}

// SemesterSales groups order totals by month over January through June
// of the given year.
func SemesterSales(orders []Order, year int) MonthlyReport {
	byMonth := make([]int, len(semesterMonths))

	count := 0
	total := 0
	for _, ord := range orders {
		if ord.CreatedAt.Year() != year {
			continue
		}
		m := int(ord.CreatedAt.Month())
		if m < 1 || m > len(semesterMonths) {
			continue
		}
		byMonth[m-1] += ord.Total
		total += ord.Total
		count++
	}

	data := make([]MonthPoint, len(semesterMonths))
	for i, name := range semesterMonths {
		data[i] = MonthPoint{Month: name, Total: byMonth[i]}
	}

	return MonthlyReport{
		Data:       data,
		TotalSold:  total,
		OrderCount: count,
		Period:     fmt.Sprintf("Primer Semestre %d", year),
	}
}
