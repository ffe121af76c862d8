package categories

import (
	"fmt"
	"strings"
)

// Category classifies a file by its extension
type Category int

const (
	Images Category = iota
	Documents
	Videos
	Audio
	Archives
	Code
	Data
	Executables
	Fonts
	Other
)

// FolderName returns the name of the directory files of this category are moved into
func (c Category) FolderName() string {
	switch c {
	case Images:
		return "Images"
	case Documents:
		return "Documents"
	case Videos:
		return "Videos"
	case Audio:
		return "Audio"
	case Archives:
		return "Archives"
	case Code:
		return "Code"
	case Data:
		return "Data"
	case Executables:
		return "Executables"
	case Fonts:
		return "Fonts"
	default:
		return "Other"
	}
}

// String returns the display name of the category
func (c Category) String() string {
	return c.FolderName()
}

// MarshalText encodes the category as its folder name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.FolderName()), nil
}

// UnmarshalText decodes a folder name into a category
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// All returns every category in declaration order
func All() []Category {
	return []Category{
		Images,
		Documents,
		Videos,
		Audio,
		Archives,
		Code,
		Data,
		Executables,
		Fonts,
		Other,
	}
}

// ParseCategory looks up a category by folder name, ignoring case
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range All() {
		if strings.EqualFold(c.FolderName(), name) {
			return c, nil
		}
	}
	return Other, fmt.Errorf("unknown category: %q", name)
}
