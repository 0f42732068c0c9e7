package types

// CVLayout is a résumé layout archetype suggested by the model.
type CVLayout struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	KeyFeatures    []string `json:"keyFeatures"`
	PreviewContent string   `json:"previewContent"`
}

// Validate checks the layout's field rules.
func (l *CVLayout) Validate() error {
	return validateEntity("layout", l)
}
