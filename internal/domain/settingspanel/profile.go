package settingspanel

import (
	"context"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// ProfilePanel edits the user's contact details.
type ProfilePanel struct {
	*base

	Values profile.Profile
}

type profileForm struct {
	Email string `validate:"omitempty,email" label:"email"`
}

func (p *ProfilePanel) Kind() Kind { return KindProfile }

func (p *ProfilePanel) Load(ctx context.Context) error {
	values, err := p.api.GetProfile(ctx)
	if err != nil {
		return p.fail(err, "Failed to load the profile.")
	}
	p.Values = values
	return nil
}

// Set updates one field by its JSON name. Empty values clear the field.
func (p *ProfilePanel) Set(field, value string) error {
	var target **string
	switch field {
	case "full_name":
		target = &p.Values.FullName
	case "phone_number":
		target = &p.Values.PhoneNumber
	case "email":
		target = &p.Values.Email
	case "work_address":
		target = &p.Values.WorkAddress
	default:
		return p.invalid(validationError("unknown profile field %q", field))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		*target = nil
		return nil
	}
	*target = stringPtr(value)
	return nil
}

func (p *ProfilePanel) Validate() error {
	form := profileForm{}
	if p.Values.Email != nil {
		form.Email = *p.Values.Email
	}
	return p.invalid(validation.Struct(form))
}

func (p *ProfilePanel) Save(ctx context.Context) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	saved, err := p.api.UpdateProfile(ctx, p.Values)
	if err != nil {
		return Outcome{}, p.fail(err, "Failed to save the profile.")
	}
	p.Values = saved
	return p.succeed("Profile saved."), nil
}
