package barbershop

import (
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	slugPrefix  = "barbershop-"
	shortIDLen  = 8
	defaultName = "Minha Barbearia"
)

// SlugCandidates returns the slugs tried, in order, when provisioning the
// barbershop of userID: a short one and, for collisions, the full id.
func SlugCandidates(userID string) []string {
	clean := slugify(userID)
	short := clean
	if len(short) > shortIDLen {
		short = short[:shortIDLen]
	}

	candidates := []string{slugPrefix + short}
	if clean != short {
		candidates = append(candidates, slugPrefix+clean)
	}
	return candidates
}

func DefaultName(firstName string) string {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return defaultName
	}
	return firstName + "'s Barbearia"
}

// NewForOwner builds the barbershop created on the owner's first access.
func NewForOwner(ownerID, firstName, slug string) *models.Barbershop {
	return &models.Barbershop{
		OwnerID:     ownerID,
		Name:        DefaultName(firstName),
		Slug:        slug,
		OpeningTime: models.DefaultOpeningTime,
		ClosingTime: models.DefaultClosingTime,
		WorkDays:    models.DefaultWorkDays,
		Timezone:    timezone.DefaultTimezone,
	}
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// ValidSlug accepts lowercase letters, digits and inner hyphens.
func ValidSlug(s string) bool {
	if len(s) < 3 || len(s) > 100 || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	return slugify(s) == s
}
