package perf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LifecycleSpanName is the root span main opens around the whole run.
const LifecycleSpanName = "app.lifecycle"

var ErrNoSpans = errors.New("no spans with valid timestamps")

// TotalDuration is the length of the run. It prefers the lifecycle span and
// falls back to the bounds of all recorded spans.
func TotalDuration(spans []SpanSnapshot) (time.Duration, error) {
	if total, ok := totalDurationFromLifecycle(spans); ok {
		return total, nil
	}
	return totalDurationFromSpanBounds(spans)
}

func totalDurationFromLifecycle(spans []SpanSnapshot) (time.Duration, bool) {
	bestStart := time.Time{}
	bestEnd := time.Time{}

	for _, span := range spans {
		if span.Name != LifecycleSpanName || !validBounds(span) {
			continue
		}
		if bestEnd.IsZero() || bestEnd.Before(span.EndTime) {
			bestStart = span.StartTime
			bestEnd = span.EndTime
		}
	}

	if bestEnd.IsZero() {
		return 0, false
	}
	return bestEnd.Sub(bestStart), true
}

func totalDurationFromSpanBounds(spans []SpanSnapshot) (time.Duration, error) {
	var minStart time.Time
	var maxEnd time.Time

	for _, span := range spans {
		if !validBounds(span) {
			continue
		}
		if minStart.IsZero() || span.StartTime.Before(minStart) {
			minStart = span.StartTime
		}
		if maxEnd.IsZero() || maxEnd.Before(span.EndTime) {
			maxEnd = span.EndTime
		}
	}

	if minStart.IsZero() || maxEnd.IsZero() {
		return 0, ErrNoSpans
	}
	return maxEnd.Sub(minStart), nil
}

func validBounds(span SpanSnapshot) bool {
	if span.StartTime.IsZero() || span.EndTime.IsZero() {
		return false
	}
	return !span.EndTime.Before(span.StartTime)
}

// Summary renders one line per span in start order, indented by nesting depth,
// followed by the total.
func Summary(spans []SpanSnapshot) (string, error) {
	total, err := TotalDuration(spans)
	if err != nil {
		return "", err
	}

	ordered := make([]SpanSnapshot, 0, len(spans))
	for _, span := range spans {
		if validBounds(span) {
			ordered = append(ordered, span)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	byID := make(map[string]SpanSnapshot, len(ordered))
	for _, span := range ordered {
		byID[span.SpanID] = span
	}

	var sb strings.Builder
	for _, span := range ordered {
		indent := strings.Repeat("  ", depth(span, byID))
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, span.Name, span.Duration()))
	}
	sb.WriteString(fmt.Sprintf("total %s", total))
	return sb.String(), nil
}

func depth(span SpanSnapshot, byID map[string]SpanSnapshot) int {
	level := 0
	for span.ParentSpanID != "" {
		parent, ok := byID[span.ParentSpanID]
		if !ok {
			break
		}
		level++
		span = parent
	}
	return level
}
