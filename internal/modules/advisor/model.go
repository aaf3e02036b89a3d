// README: Travel method suggestion types.
package advisor

import "strings"

// Suggestion is one ranked travel method with its rationale.
type Suggestion struct {
	Method       string `json:"method"`
	Rationale    string `json:"rationale"`
	RelativeCost string `json:"relative_cost"`
	RelativeTime string `json:"relative_time"`
}

// IsFlight reports whether a method name describes air travel.
func IsFlight(method string) bool {
	m := strings.ToLower(method)
	return strings.Contains(m, "flight") || strings.Contains(m, "plane") || strings.Contains(m, "air")
}
