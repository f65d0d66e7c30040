package notion

import (
	"encoding/json"
	"errors"
	"time"

	"notionhabit/internal/service"
)

// page mirrors the subset of a Notion page object read for a habit record.
// Pointers distinguish missing keys from zero values.
type page struct {
	ID         string `json:"id"`
	Properties struct {
		Name *struct {
			Title []struct {
				Text *struct {
					Content string `json:"content"`
				} `json:"text"`
			} `json:"title"`
		} `json:"Name"`
		Date *struct {
			Date *struct {
				Start string `json:"start"`
			} `json:"date"`
		} `json:"Date"`
		Tags *struct {
			MultiSelect []struct {
				Name string `json:"name"`
			} `json:"multi_select"`
		} `json:"Tags"`
		Status *struct {
			Select *struct {
				Name string `json:"name"`
			} `json:"select"`
		} `json:"Status"`
	} `json:"properties"`
}

// ParsePage extracts a habit record from a raw Notion page.
// Missing or wrongly typed properties yield *service.MalformedRecordError.
func ParsePage(raw json.RawMessage) (service.Record, error) {
	var p page
	if err := json.Unmarshal(raw, &p); err != nil {
		// Unmarshal keeps decoding past a type mismatch, so p.ID may still be set.
		path := "page"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			path = typeErr.Field
		}
		return service.Record{}, &service.MalformedRecordError{ID: p.ID, Path: path}
	}

	missing := func(path string) error {
		return &service.MalformedRecordError{ID: p.ID, Path: path}
	}

	if p.ID == "" {
		return service.Record{}, missing("id")
	}

	props := p.Properties
	if props.Name == nil || len(props.Name.Title) == 0 || props.Name.Title[0].Text == nil {
		return service.Record{}, missing("properties.Name.title[0].text.content")
	}
	if props.Date == nil || props.Date.Date == nil || props.Date.Date.Start == "" {
		return service.Record{}, missing("properties.Date.date.start")
	}
	if props.Tags == nil || len(props.Tags.MultiSelect) == 0 {
		return service.Record{}, missing("properties.Tags.multi_select[0].name")
	}
	if props.Status == nil || props.Status.Select == nil {
		return service.Record{}, missing("properties.Status.select.name")
	}

	date, ok := calendarDate(props.Date.Date.Start)
	if !ok {
		return service.Record{}, missing("properties.Date.date.start (YYYY-MM-DD)")
	}

	return service.Record{
		ID:     p.ID,
		Name:   props.Name.Title[0].Text.Content,
		Date:   date,
		Tag:    props.Tags.MultiSelect[0].Name,
		Status: service.Status(props.Status.Select.Name),
	}, nil
}

// calendarDate returns the YYYY-MM-DD prefix of a date or datetime string.
func calendarDate(start string) (string, bool) {
	if len(start) < len(time.DateOnly) {
		return "", false
	}
	prefix := start[:len(time.DateOnly)]
	if _, err := time.Parse(time.DateOnly, prefix); err != nil {
		return "", false
	}
	return prefix, true
}
