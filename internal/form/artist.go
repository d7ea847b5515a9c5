package form

import "github.com/iliyamo/fyyur/internal/model"

// ArtistForm is the schema of the create and edit artist forms.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=255"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,max=120,state"`
	Phone              string   `form:"phone" json:"phone" validate:"required,max=120,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,max=500,url"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,max=120,url"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,max=120,url"`
	SeekingVenue       string   `form:"seeking_venue" json:"seeking_venue" validate:"boolish"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"maxrunes=250"`
}

// Artist validates the submitted values and returns the artist they
// describe, or a *ValidationError.
func (f *ArtistForm) Artist() (*model.Artist, error) {
	trimAll(&f.Name, &f.City, &f.State, &f.Phone, &f.ImageLink,
		&f.FacebookLink, &f.WebsiteLink, &f.SeekingVenue, &f.SeekingDescription)
	f.Genres = cleanGenres(f.Genres)

	ve := &ValidationError{}
	check(f, ve)
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	seeking, _ := parseBool(f.SeekingVenue)
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       seeking,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// ArtistFormFrom prefills the edit form with a stored artist.
func ArtistFormFrom(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             append([]string{}, a.Genres...),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       boolString(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}
