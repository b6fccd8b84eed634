package prov

import "time"

func iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
