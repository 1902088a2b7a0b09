package tenant

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domainAppointment "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// UpdateSettingsInput carries the editable settings. Nil fields are kept.
type UpdateSettingsInput struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	CoverURL     *string `json:"cover_url"`
	PrimaryColor *string `json:"primary_color"`
	OpeningTime  *string `json:"opening_time"`
	ClosingTime  *string `json:"closing_time"`
	WorkDays     *string `json:"work_days"`
	Timezone     *string `json:"timezone"`
}

type UpdateSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSettings(repo domain.Repository, audit *audit.Dispatcher) *UpdateSettings {
	return &UpdateSettings{repo: repo, audit: audit}
}

func (uc *UpdateSettings) Execute(
	ctx context.Context,
	shop *models.Barbershop,
	userID string,
	in UpdateSettingsInput,
) (*models.Barbershop, error) {

	fields := map[string]any{}

	// --------------------------------------------------
	// 1. Identidade
	// --------------------------------------------------
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness("invalid_name")
		}
		fields["name"] = name
	}
	if in.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*in.Slug))
		if !domain.ValidSlug(slug) {
			return nil, httperr.ErrBusiness("invalid_slug")
		}
		fields["slug"] = slug
	}

	setString(fields, "description", in.Description)
	setString(fields, "address", in.Address)
	setString(fields, "phone", in.Phone)
	setString(fields, "email", in.Email)
	setString(fields, "cover_url", in.CoverURL)
	setString(fields, "primary_color", in.PrimaryColor)

	// --------------------------------------------------
	// 2. Horário de funcionamento
	// --------------------------------------------------
	opening := shop.OpeningTime
	closing := shop.ClosingTime
	if in.OpeningTime != nil {
		opening = *in.OpeningTime
		fields["opening_time"] = opening
	}
	if in.ClosingTime != nil {
		closing = *in.ClosingTime
		fields["closing_time"] = closing
	}
	if in.OpeningTime != nil || in.ClosingTime != nil {
		open, err := domainAppointment.ParseClock(opening)
		if err != nil {
			return nil, err
		}
		closeAt, err := domainAppointment.ParseClock(closing)
		if err != nil {
			return nil, err
		}
		if closeAt <= open {
			return nil, httperr.ErrBusiness("invalid_opening_hours")
		}
	}

	if in.WorkDays != nil {
		days, ok := normalizeWorkDays(*in.WorkDays)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_work_days")
		}
		fields["work_days"] = days
	}

	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.ErrBusiness("invalid_timezone")
		}
		fields["timezone"] = *in.Timezone
	}

	if len(fields) == 0 {
		return shop, nil
	}

	// --------------------------------------------------
	// 3. Persistência
	// --------------------------------------------------
	updated, err := uc.repo.Update(ctx, shop.ID, fields)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, len(fields))
	for k := range fields {
		changed = append(changed, k)
	}
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(userID),
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &updated.ID,
		Metadata:     map[string]any{"fields": changed},
	})

	return updated, nil
}

func setString(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = strings.TrimSpace(*v)
	}
}

// normalizeWorkDays validates a comma separated list of weekdays (0-6) and
// returns it without blanks or repeats.
func normalizeWorkDays(s string) (string, bool) {
	seen := [7]bool{}
	out := make([]string, 0, 7)

	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) != 1 || p[0] < '0' || p[0] > '6' {
			return "", false
		}
		if d := p[0] - '0'; !seen[d] {
			seen[d] = true
			out = append(out, p)
		}
	}
	return strings.Join(out, ","), true
}
