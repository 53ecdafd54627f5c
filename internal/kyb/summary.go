package kyb

import (
	"fmt"
	"strings"
)

// Summary renders a human-readable report of a verdict for audit reviewers.
// Output is deterministic for a given verdict.
func Summary(v *Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "KYB Verification Result: %s\n\n", strings.ToUpper(string(v.Status)))
	fmt.Fprintf(&b, "Reason: %s\n\n", v.Reason)

	b.WriteString("Individual Checks:\n")
	for _, check := range v.Checks {
		fmt.Fprintf(&b, "- %s: %s - %s\n",
			titleCheckName(check.CheckName),
			strings.ToUpper(string(check.Status)),
			check.Reason,
		)
	}

	if len(v.Metadata) > 0 {
		b.WriteString("\nMetadata:\n")
		fmt.Fprintf(&b, "- Jurisdiction: %v\n", metadataValue(v.Metadata, "jurisdiction", "N/A"))
		fmt.Fprintf(&b, "- Entity Age: %v days\n", metadataValue(v.Metadata, "entity_age_days", 0))
		fmt.Fprintf(&b, "- Rules Applied: %v\n", metadataValue(v.Metadata, "rules_applied", 0))
	}

	return b.String()
}

func metadataValue(metadata map[string]any, key string, fallback any) any {
	if value, ok := metadata[key]; ok {
		return value
	}
	return fallback
}

// titleCheckName turns "jurisdiction_verification" into
// "Jurisdiction Verification".
func titleCheckName(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
