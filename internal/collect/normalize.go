// Package collect is the data aggregation and normalization pipeline:
// it folds the wizard's flat key/value snapshot, legacy per-index
// fields included, into one canonical site-config document.
package collect

import (
	"fmt"
	"reflect"
	"strconv"
)

// legacyField maps one per-index key pattern to a record field.
// The pattern takes the index, e.g. "product%dName".
type legacyField struct {
	pattern string
	field   string
}

// legacyListRule declares how one family of legacy indexed keys folds
// into a target array. One generic fold consumes these; there is no
// per-entity scan logic.
type legacyListRule struct {
	target   string
	maxIndex int

	// fields build a record per index; any populated field yields a
	// record, with the placeholder substituted for a missing
	// placeholderField.
	fields           []legacyField
	placeholderField string
	placeholderText  string // takes the index, e.g. "Product %d"

	// valueField set means the slot's single value is appended
	// directly, and only when truthy (images are never synthesized).
	valueField string
}

var contentRules = []legacyListRule{
	{
		target:   "products",
		maxIndex: 10,
		fields: []legacyField{
			{pattern: "product%dName", field: "name"},
			{pattern: "product%dDesc", field: "description"},
			{pattern: "product%dPrice", field: "price"},
		},
		placeholderField: "name",
		placeholderText:  "Product %d",
	},
	{
		target:   "team",
		maxIndex: 10,
		fields: []legacyField{
			{pattern: "member%dName", field: "name"},
			{pattern: "member%dRole", field: "role"},
		},
		placeholderField: "name",
		placeholderText:  "Member %d",
	},
}

var imageRules = []legacyListRule{
	{
		target:     "productImages",
		maxIndex:   15,
		valueField: "product%dImage",
	},
	{
		target:     "teamAvatars",
		maxIndex:   15,
		valueField: "member%dAvatar",
	},
}

// NormalizeContent reshapes legacy per-index product and team fields
// into ordered lists. Total: absent or malformed input comes back as
// empty collections, never an error.
func NormalizeContent(raw map[string]any) map[string]any {
	return normalize(raw, contentRules)
}

// NormalizeImages does the same for the image reference lists.
func NormalizeImages(raw map[string]any) map[string]any {
	return normalize(raw, imageRules)
}

func normalize(raw map[string]any, rules []legacyListRule) map[string]any {
	out := make(map[string]any, len(raw))

	consumed := make(map[string]bool)
	for _, rule := range rules {
		for key := range rule.legacyKeys() {
			consumed[key] = true
		}
	}

	// Free-form keys pass through unchanged; consumed legacy keys
	// are dropped so the output never carries both forms.
	for key, value := range raw {
		if !consumed[key] {
			out[key] = value
		}
	}

	for _, rule := range rules {
		// An array already present wins over legacy keys.
		if existing, ok := raw[rule.target]; ok && isList(existing) {
			out[rule.target] = existing
			continue
		}
		out[rule.target] = rule.fold(raw)
	}

	return out
}

func (r legacyListRule) legacyKeys() map[string]bool {
	keys := make(map[string]bool)
	for i := 1; i <= r.maxIndex; i++ {
		if r.valueField != "" {
			keys[fmt.Sprintf(r.valueField, i)] = true
		}
		for _, f := range r.fields {
			keys[fmt.Sprintf(f.pattern, i)] = true
		}
	}
	// The target key itself is owned by the rule, not passthrough.
	keys[r.target] = true
	return keys
}

// fold scans the full index window and collapses gaps: absent slots
// are skipped, never padded.
func (r legacyListRule) fold(raw map[string]any) []any {
	list := []any{}
	for i := 1; i <= r.maxIndex; i++ {
		if r.valueField != "" {
			if value := raw[fmt.Sprintf(r.valueField, i)]; truthy(value) {
				list = append(list, value)
			}
			continue
		}

		record := make(map[string]any, len(r.fields))
		populated := false
		for _, f := range r.fields {
			value := asString(raw[fmt.Sprintf(f.pattern, i)])
			record[f.field] = value
			if value != "" {
				populated = true
			}
		}
		if !populated {
			continue
		}
		if r.placeholderField != "" && record[r.placeholderField] == "" {
			record[r.placeholderField] = fmt.Sprintf(r.placeholderText, i)
		}
		list = append(list, record)
	}
	return list
}

func isList(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.ValueOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// asString coerces snapshot values. JSON numbers arrive as float64;
// anything without a sensible text form reads as empty.
func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// truthy mirrors the loose inclusion rule for image slots.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}
