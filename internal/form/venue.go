package form

import "github.com/iliyamo/fyyur/internal/model"

// VenueForm is the schema of the create and edit venue forms.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=255"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,max=120,state"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"required,max=120,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,max=500,url"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,max=120,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,max=120,url"`
	SeekingTalent      string   `form:"seeking_talent" json:"seeking_talent" validate:"boolish"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"maxrunes=250"`
}

// Venue validates the submitted values and returns the venue they
// describe.  The returned error is a *ValidationError naming every
// failing field.
func (f *VenueForm) Venue() (*model.Venue, error) {
	trimAll(&f.Name, &f.City, &f.State, &f.Address, &f.Phone, &f.ImageLink,
		&f.FacebookLink, &f.WebsiteLink, &f.SeekingTalent, &f.SeekingDescription)
	f.Genres = cleanGenres(f.Genres)

	ve := &ValidationError{}
	check(f, ve)
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	seeking, _ := parseBool(f.SeekingTalent)
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      seeking,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}, nil
}

// VenueFormFrom prefills the edit form with a stored venue.
func VenueFormFrom(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             append([]string{}, v.Genres...),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      boolString(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
