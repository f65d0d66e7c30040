package notion

import (
	"fmt"

	"notionhabit/internal/service"
)

// Database property names.
const (
	propName   = "Name"
	propDate   = "Date"
	propTags   = "Tags"
	propStatus = "Status"
)

// windowKeys maps analysis windows to Notion relative date filter conditions.
var windowKeys = map[service.Window]string{
	service.ThisWeek:  "this_week",
	service.PastWeek:  "past_week",
	service.PastMonth: "past_month",
	service.PastYear:  "past_year",
}

// BuildFilter converts clauses into a Notion database filter object.
// A single clause is sent bare; several are combined under "and".
func BuildFilter(clauses []service.Clause) (any, error) {
	if len(clauses) == 0 {
		return nil, nil
	}

	conds := make([]map[string]any, 0, len(clauses))
	for _, c := range clauses {
		cond, err := condition(c)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	if len(conds) == 1 {
		return conds[0], nil
	}
	return map[string]any{"and": conds}, nil
}

func condition(c service.Clause) (map[string]any, error) {
	switch c.Field {
	case service.FieldTag:
		return map[string]any{
			"property":     propTags,
			"multi_select": map[string]string{"contains": c.Value},
		}, nil
	case service.FieldStatus:
		return map[string]any{
			"property": propStatus,
			"select":   map[string]string{"equals": c.Value},
		}, nil
	case service.FieldName:
		return map[string]any{
			"property": propName,
			"title":    map[string]string{"contains": c.Value},
		}, nil
	case service.FieldDate:
		key, ok := windowKeys[c.Window]
		if !ok {
			return nil, &service.InvalidWindowError{Window: c.Window}
		}
		return map[string]any{
			"property": propDate,
			"date":     map[string]any{key: struct{}{}},
		}, nil
	}
	return nil, fmt.Errorf("unsupported filter clause: %s", c)
}
