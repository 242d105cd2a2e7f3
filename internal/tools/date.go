package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

var dayOffsets = map[string]int{
	"today":              0,
	"tomorrow":           1,
	"day_after_tomorrow": 2,
}

// Date resolves relative day names to calendar dates in a fixed zone.
// It has no device dependency.
type Date struct {
	loc *time.Location
	now func() time.Time
}

func NewDate() *Date {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// Asia/Tokyo has no DST; a fixed offset is equivalent.
		loc = time.FixedZone("JST", 9*60*60)
	}
	return &Date{loc: loc, now: time.Now}
}

func (d *Date) Name() string { return "get_date" }
func (d *Date) Description() string {
	return "Resolve 'today', 'tomorrow' or 'day_after_tomorrow' to a calendar date (Asia/Tokyo)."
}

func (d *Date) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"day": map[string]any{
				"type":        "string",
				"enum":        []string{"today", "tomorrow", "day_after_tomorrow"},
				"description": "Which day to resolve",
			},
		},
		"required":             []string{"day"},
		"additionalProperties": false,
	}
}

func (d *Date) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Day string `json:"day"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing get_date input: %w", err)
	}

	offset, ok := dayOffsets[args.Day]
	if !ok {
		return "", validationf("day must be 'today', 'tomorrow' or 'day_after_tomorrow', got %q", args.Day)
	}

	return d.now().In(d.loc).AddDate(0, 0, offset).Format("2006-01-02"), nil
}
