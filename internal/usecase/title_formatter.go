package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// FormattedTitle is the result of normalizing a free-text product name
type FormattedTitle struct {
	Title   string
	SKU     string
	Brand   string
	Model   string
	KeySpec string
}

// Compiled regex patterns for title normalization
var (
	// Matches hyphenated model codes like "wv-220" or "x9-pro"
	hyphenModelPattern = regexp.MustCompile(`^[a-zA-Z0-9]+-[a-zA-Z0-9]+$`)

	// Matches wattage specs like "450W", "450 w", "Power: 1200 W"
	powerSpecPattern = regexp.MustCompile(`(?i)(\d+)\s*w\b`)

	// Matches capacity specs like "0.6L", "550 ml", "256GB", "2TB", "48 MP"
	capacitySpecPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(l|ml|gb|tb|mp)\b`)

	// Matches runtime specs like "45 min", "8 hours"
	runtimeSpecPattern = regexp.MustCompile(`(?i)(\d+)\s*(min(?:ute)?s?|h(?:ou)?rs?)\b`)

	anyDigitPattern      = regexp.MustCompile(`\d`)
	nonAlnumSpacePattern = regexp.MustCompile(`[^a-z0-9\s]`)
	titleSpacePattern    = regexp.MustCompile(`\s+`)
)

// categoryKeySpecs maps category substrings to a generic key-spec suffix
// used when neither the name nor the specifications yield one
var categoryKeySpecs = []struct {
	match   string
	keySpec string
}{
	{"vacuum", "Cordless Vacuum Cleaner"},
	{"phone", "Smartphone"},
	{"laptop", "Laptop Computer"},
	{"headphone", "Wireless Headphones"},
	{"watch", "Smart Watch"},
	{"camera", "Digital Camera"},
	{"kitchen", "Kitchen Appliance"},
	{"cleaning", "Cleaning Equipment"},
	{"electronics", "Electronic Device"},
}

const defaultKeySpec = "Professional Grade"

// fallbackTitle is used when the input name is empty or blank
const fallbackTitle = "Generic Product Standard"

// FormatTitle parses a free-text product name into brand/model/key-spec
// components and re-renders a canonical "Brand Model KeySpec" title plus
// a slug SKU. A missing key-spec is inferred from the specification list
// first, then from the category. Never fails; empty input yields a fixed
// generic title.
func FormatTitle(name string, specs []string, category string) FormattedTitle {
	words := strings.Fields(name)
	if len(words) == 0 {
		return FormattedTitle{
			Title:   fallbackTitle,
			SKU:     MakeSKU(fallbackTitle),
			KeySpec: defaultKeySpec,
		}
	}

	// Step 1: first word is the brand, capitalized
	brand := capitalize(words[0])

	// Step 2: scan words[1..3] for model tokens. A token starts the model
	// if it mixes letters and digits (<=10 chars) or is a hyphenated code;
	// a short alphanumeric word directly after a model token continues it.
	var modelWords []string
	rest := 1
	for i := 1; i <= 3 && i < len(words); i++ {
		if isModelToken(words[i]) || (len(modelWords) > 0 && isModelContinuation(words[i])) {
			modelWords = append(modelWords, words[i])
			rest = i + 1
			continue
		}
		break
	}
	if len(modelWords) == 0 && len(words) > 1 {
		// No model token: second word is used verbatim as the model
		modelWords = []string{words[1]}
		rest = 2
	}
	model := strings.Join(modelWords, " ")

	// Step 3: remaining words form the key spec; infer one if empty
	keySpec := strings.Join(words[rest:], " ")
	if keySpec == "" {
		keySpec = inferKeySpec(specs, category)
	}

	// Step 4: dedupe words case-insensitively, preserving order
	title := dedupeWords(brand + " " + model + " " + keySpec)

	// Step 5: too-short titles get the category suffix appended once more
	if len(strings.Fields(title)) < 3 {
		title = dedupeWords(title + " " + categoryKeySpec(category))
	}

	return FormattedTitle{
		Title:   title,
		SKU:     MakeSKU(title),
		Brand:   brand,
		Model:   model,
		KeySpec: keySpec,
	}
}

// MakeSKU renders a slug SKU from a title: lowercase, non-alphanumerics
// stripped, first three words joined with hyphens.
func MakeSKU(title string) string {
	lowered := strings.ToLower(title)
	lowered = nonAlnumSpacePattern.ReplaceAllString(lowered, "")
	words := strings.Fields(lowered)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, "-")
}

// isModelToken reports whether a word can start a model code
func isModelToken(word string) bool {
	if hyphenModelPattern.MatchString(word) {
		return true
	}
	if len(word) > 10 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// isModelContinuation reports whether a word extends an already-started
// model code (e.g. the "flex" in "h8 flex")
func isModelContinuation(word string) bool {
	if len(word) > 10 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// inferKeySpec derives a key spec from the specification list, falling
// back to the category lookup table
func inferKeySpec(specs []string, category string) string {
	// 1. Power rating
	for _, spec := range specs {
		if m := powerSpecPattern.FindStringSubmatch(spec); m != nil {
			return m[1] + "W"
		}
	}

	// 2. Capacity
	for _, spec := range specs {
		if m := capacitySpecPattern.FindStringSubmatch(spec); m != nil {
			return m[1] + normalizeCapacityUnit(m[2])
		}
	}

	// 3. Runtime
	for _, spec := range specs {
		if m := runtimeSpecPattern.FindStringSubmatch(spec); m != nil {
			return m[1] + normalizeRuntimeUnit(m[2])
		}
	}

	// 4. First spec with any digit, truncated at the first comma / 20 chars
	for _, spec := range specs {
		if anyDigitPattern.MatchString(spec) {
			trimmed := spec
			if idx := strings.Index(trimmed, ","); idx > 0 {
				trimmed = trimmed[:idx]
			}
			if len(trimmed) > 20 {
				trimmed = trimmed[:20]
			}
			return strings.TrimSpace(trimmed)
		}
	}

	// 5. Category lookup table
	return categoryKeySpec(category)
}

// categoryKeySpec resolves the category suffix via substring match
func categoryKeySpec(category string) string {
	lowered := strings.ToLower(category)
	for _, entry := range categoryKeySpecs {
		if strings.Contains(lowered, entry.match) {
			return entry.keySpec
		}
	}
	return defaultKeySpec
}

func normalizeCapacityUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "l":
		return "L"
	case "gb":
		return "GB"
	case "tb":
		return "TB"
	case "mp":
		return "MP"
	default:
		return "ml"
	}
}

func normalizeRuntimeUnit(unit string) string {
	if strings.HasPrefix(strings.ToLower(unit), "h") {
		return "h"
	}
	return "min"
}

// dedupeWords removes repeated words case-insensitively, preserving the
// first occurrence's casing and order, and collapses whitespace
func dedupeWords(s string) string {
	seen := make(map[string]bool)
	var kept []string
	for _, word := range strings.Fields(titleSpacePattern.ReplaceAllString(s, " ")) {
		key := strings.ToLower(word)
		if !seen[key] {
			seen[key] = true
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// capitalize upper-cases the first rune of a word
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
