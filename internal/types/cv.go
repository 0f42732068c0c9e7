// Package types provides the domain records shared by the store, the generation
// service and the screen controllers. JSON field names match the persisted layout.
package types

// CV is a stored résumé.
type CV struct {
	ID                string   `json:"id"`
	Name              string   `json:"name" validate:"required"`
	Content           string   `json:"content" validate:"required"`
	YearsOfExperience *int     `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0"`
	PortfolioLinks    []string `json:"portfolioLinks,omitempty"`
}

// Validate checks the CV's field rules.
func (c *CV) Validate() error {
	return validateEntity("cv", c)
}

// FindCV returns the CV with the given id.
func FindCV(cvs []CV, id string) (CV, bool) {
	for _, cv := range cvs {
		if cv.ID == id {
			return cv, true
		}
	}
	return CV{}, false
}
