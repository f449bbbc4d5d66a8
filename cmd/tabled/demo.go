package main

import (
	"carpenter"
	"carpenter/domain"
	"carpenter/table"
)

var classNames = map[int64]string{1: "First", 2: "Second", 3: "Third"}

var portNames = map[string]string{
	"S": "Southampton",
	"C": "Cherbourg",
	"Q": "Queenstown",
}

// registerDemoTables wires the Titanic passenger dataset in two shapes: a
// full manifest and a compact fares listing.
func registerDemoTables(c *carpenter.Carpenter) {
	c.AddFunc("passengers", func(t *table.Table) error {
		t.Source("passengers").
			SortBy("name", domain.SortAsc)

		t.AddColumn("name", table.Label("Passenger"), table.Sortable())
		t.AddColumn("class", table.Sortable(), table.Present(presentClass))
		t.AddColumn("fare", table.Sortable(),
			table.Spreadsheet(func(sc *table.SpreadsheetCell) {
				sc.Format = "%.2f"
			}))
		t.AddColumn("embarked", table.Present(presentPort))
		t.AddColumn("survived", table.Present(presentSurvived))
		return nil
	})

	c.AddFunc("fares", func(t *table.Table) error {
		t.Source("passengers").
			PageSize(10).
			SortBy("fare", domain.SortDesc)

		t.AddColumn("name", table.Label("Passenger"), table.Sortable())
		t.AddColumn("fare", table.Sortable())
		return nil
	})
}

func presentClass(value any, _ *table.Row) any {
	if n, ok := value.(int64); ok {
		if name, ok := classNames[n]; ok {
			return name
		}
	}
	return value
}

func presentPort(value any, _ *table.Row) any {
	if code, ok := value.(string); ok {
		if name, ok := portNames[code]; ok {
			return name
		}
	}
	return value
}

func presentSurvived(value any, _ *table.Row) any {
	switch v := value.(type) {
	case int64:
		if v != 0 {
			return "Yes"
		}
		return "No"
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	}
	return value
}
