package validation

import (
	"strings"

	"recommendation-workers/internal/models"
)

// UserProfileSchema is the wire-level schema for profile payloads carried
// in job variables. Field-level presence is re-checked by MissingProfileFields
// so error messages can list every offending field at once.
const UserProfileSchema = `{
	"type": "object",
	"properties": {
		"usage":       {"type": "string"},
		"budget":      {"type": "string"},
		"experience":  {"type": "string"},
		"priority":    {"type": "string"},
		"portability": {"type": "string"},
		"gaming":      {"type": "string"},
		"software":    {"type": "array", "items": {"type": "string"}}
	}
}`

// EnsureProfileInputSchema is the wire-level schema for the
// ensure-user-profile job payload. It rejects wrongly typed fields up
// front so the caller sees field-level problems instead of a decode
// failure.
const EnsureProfileInputSchema = `{
	"type": "object",
	"properties": {
		"userId":      {"type": "string"},
		"userProfile": ` + UserProfileSchema + `
	}
}`

// MissingProfileFields returns the names of required profile fields that
// are absent or blank. An empty software list counts as missing. The
// returned order is fixed so error messages are deterministic.
func MissingProfileFields(p *models.UserProfile) []string {
	var missing []string

	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check("usage", p.Usage)
	check("budget", p.Budget)
	check("experience", p.Experience)
	check("priority", p.Priority)
	check("portability", p.Portability)
	check("gaming", p.Gaming)

	hasSoftware := false
	for _, sw := range p.Software {
		if strings.TrimSpace(sw) != "" {
			hasSoftware = true
			break
		}
	}
	if !hasSoftware {
		missing = append(missing, "software")
	}

	return missing
}

// ValidateUserProfile checks the seven required profile fields and the
// payload shape. Returns nil when the profile is complete.
func ValidateUserProfile(p *models.UserProfile) []string {
	if p == nil {
		return []string{"usage", "budget", "experience", "priority", "portability", "gaming", "software"}
	}
	return MissingProfileFields(p)
}
