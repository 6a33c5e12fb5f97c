package breach

import "strings"

const dataClassSeparator = ", "

// Normalize turns a lookup result into rows, keeping the upstream order.
// NotFound and Error results produce no rows.
func Normalize(r Result) []Row {
	if r.Outcome != OutcomeFound {
		return []Row{}
	}
	rows := make([]Row, 0, len(r.Breaches))
	for _, b := range r.Breaches {
		classes := make([]string, len(b.DataClasses))
		copy(classes, b.DataClasses)
		rows = append(rows, Row{
			Name:        b.Name,
			BreachDate:  b.BreachDate,
			IsVerified:  b.IsVerified,
			DataClasses: classes,
		})
	}
	return rows
}

// DataClassesText joins the data classes for display.
func (r Row) DataClassesText() string {
	return strings.Join(r.DataClasses, dataClassSeparator)
}

// SplitDataClasses reverses DataClassesText.
func SplitDataClasses(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, dataClassSeparator)
}

func ChartPoints(rows []Row) []ChartPoint {
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{Name: r.Name, Count: len(r.DataClasses)})
	}
	return points
}
