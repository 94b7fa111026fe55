package menu

import (
	"errors"
	"fmt"
)

var ErrValidationFailed = errors.New("validation failed")

// Resolve validates the selections against the item's option schemas
// and returns the normalized selections plus the total surcharge.
//
// Exclusive values override: when one is selected, every other value of
// that option is dropped before cardinality and surcharge are computed.
// The final unit price is item.Price + surcharge; the caller freezes it
// into the order item, it is never recomputed.
func Resolve(item *Item, sel Selections) (Selections, float64, error) {
	normalized := make(Selections, len(item.Options))
	surcharge := 0.0

	for key, schema := range item.Options {
		chosen := dedupe(sel[key])

		if len(chosen) == 0 {
			if schema.Required {
				return nil, 0, fmt.Errorf("%w: option %q is required", ErrValidationFailed, key)
			}
			continue
		}

		allowed := make(map[string]OptionValue, len(schema.Values))
		for _, v := range schema.Values {
			allowed[v.Value] = v
		}
		for _, v := range chosen {
			if _, ok := allowed[v]; !ok {
				return nil, 0, fmt.Errorf("%w: %q is not a valid value for option %q", ErrValidationFailed, v, key)
			}
		}

		chosen = applyExclusivity(schema, chosen)

		switch schema.Type {
		case OptionRadio:
			if len(chosen) != 1 {
				return nil, 0, fmt.Errorf("%w: option %q takes exactly one value", ErrValidationFailed, key)
			}
		case OptionCheckbox:
			if schema.Min > 0 && len(chosen) < schema.Min {
				return nil, 0, fmt.Errorf("%w: option %q needs at least %d values", ErrValidationFailed, key, schema.Min)
			}
			if schema.Max > 0 && len(chosen) > schema.Max {
				return nil, 0, fmt.Errorf("%w: option %q allows at most %d values", ErrValidationFailed, key, schema.Max)
			}
		default:
			return nil, 0, fmt.Errorf("%w: option %q has unknown type %q", ErrValidationFailed, key, schema.Type)
		}

		for _, v := range chosen {
			surcharge += allowed[v].Surcharge
		}
		normalized[key] = chosen
	}

	return normalized, surcharge, nil
}

// applyExclusivity reduces the selection to the exclusive value when one
// is present. Exclusivity is an unconditional override, not
// first-selected-wins. Both the value-level flag and a deselect-others
// rule trigger it.
func applyExclusivity(schema OptionSchema, chosen []string) []string {
	exclusive := make(map[string]bool)
	for _, v := range schema.Values {
		if v.Exclusive {
			exclusive[v.Value] = true
		}
	}
	for _, r := range schema.Rules {
		if r.Action == ActionDeselectOthers {
			exclusive[r.WhenSelected] = true
		}
	}

	for _, v := range schema.Values {
		if !exclusive[v.Value] {
			continue
		}
		for _, c := range chosen {
			if c == v.Value {
				return []string{v.Value}
			}
		}
	}
	return chosen
}

func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Label resolves the human label for a selected value of an item option.
// Unknown values fall back to the raw value.
func Label(item *Item, key, value string) string {
	schema, ok := item.Options[key]
	if !ok {
		return value
	}
	for _, v := range schema.Values {
		if v.Value == value {
			return v.Label
		}
	}
	return value
}
