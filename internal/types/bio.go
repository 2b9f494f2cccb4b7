package types

// BioDocument is the self-description a techfolio owner publishes at _data/bio.json.
// Only the fields copied into a ProfileStub are decoded.
type BioDocument struct {
	Basics    BioBasics     `json:"basics"`
	Interests []BioInterest `json:"interests,omitempty"`
}

// BioBasics holds the identity block of a bio document.
type BioBasics struct {
	Name    string `json:"name,omitempty"`
	Label   string `json:"label,omitempty"`
	Website string `json:"website,omitempty"`
	Summary string `json:"summary,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// BioInterest is one entry of the interests list.
type BioInterest struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

// IsEmpty reports whether the document carries no data, which is how a failed
// fetch or parse is represented.
func (b *BioDocument) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.Basics == (BioBasics{}) && len(b.Interests) == 0
}

// InterestNames flattens the interests list to its names, skipping blank ones.
func (b *BioDocument) InterestNames() []string {
	names := make([]string, 0, len(b.Interests))
	for _, interest := range b.Interests {
		if interest.Name != "" {
			names = append(names, interest.Name)
		}
	}
	return names
}
