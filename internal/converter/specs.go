package converter

import (
	"strings"
	"unicode/utf8"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
)

// genericSpecKey collects variant parts that carry no key:value structure.
const genericSpecKey = "規格"

// GroupSpecs regroups variant names into the two-layer specification shape:
// each name is split on comma/hyphen into parts, each part on its first colon
// into (key, value). Parts without a colon land in the generic bucket.
// Values are deduplicated per key; both key order and value order are
// first-seen.
func GroupSpecs(variants []conversion.Variant) conversion.SpecSet {
	groups := make(map[string][]string)
	var keys []string
	seen := make(map[string]map[string]bool)

	add := func(key, value string) {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return
		}
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
			keys = append(keys, key)
		}
		if seen[key][value] {
			return
		}
		seen[key][value] = true
		groups[key] = append(groups[key], value)
	}

	for _, v := range variants {
		for _, part := range splitVariantName(v.Name) {
			key, value, found := cutSpecPart(part)
			if found {
				add(key, value)
			} else {
				add(genericSpecKey, part)
			}
		}
	}

	if len(groups) == 0 {
		return conversion.SpecSet{}
	}
	return conversion.SpecSet{Groups: groups, Keys: keys}
}

// splitVariantName breaks a variant name on comma and hyphen delimiters,
// half- and full-width alike.
func splitVariantName(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == ',' || r == '，' || r == '-'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cutSpecPart splits "key:value" on the first colon (half- or full-width).
func cutSpecPart(part string) (key, value string, found bool) {
	idx := strings.IndexAny(part, ":：")
	if idx < 0 {
		return "", part, false
	}
	_, size := utf8.DecodeRuneInString(part[idx:])
	return part[:idx], part[idx+size:], true
}
