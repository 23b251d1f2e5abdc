package scrub

import "fmt"

// Category identifies one kind of redactable entity. The set is closed:
// detectors exist for the first eleven, while the remaining Safe Harbor
// categories (URL through IP) are recognized by ParseCategory so callers can
// name them in skip lists, but carry no detection rules yet.
type Category string

const (
	CategoryEmail        Category = "email"
	CategoryPhone        Category = "phone"
	CategoryDate         Category = "date"
	CategoryRelativeDate Category = "relative-date"
	CategorySSN          Category = "ssn"
	CategoryMRN          Category = "mrn"
	CategoryZip          Category = "zip"
	CategoryPerson       Category = "person"
	CategoryFacility     Category = "facility"
	CategoryAddress      Category = "address"
	CategoryCoordinate   Category = "coordinate"

	// Reserved for future Safe Harbor detectors.
	CategoryURL       Category = "url"
	CategoryInsurance Category = "insurance"
	CategoryLicense   Category = "license"
	CategoryVehicle   Category = "vehicle"
	CategoryDevice    Category = "device"
	CategoryIP        Category = "ip"
)

// Categories lists every known category in declaration order, implemented
// detectors first.
var Categories = []Category{
	CategoryEmail,
	CategoryPhone,
	CategoryDate,
	CategoryRelativeDate,
	CategorySSN,
	CategoryMRN,
	CategoryZip,
	CategoryPerson,
	CategoryFacility,
	CategoryAddress,
	CategoryCoordinate,
	CategoryURL,
	CategoryInsurance,
	CategoryLicense,
	CategoryVehicle,
	CategoryDevice,
	CategoryIP,
}

// String returns the canonical name of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a category name to its Category value.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", name)
}

// SkipSet is the set of categories excluded from a redaction pass.
type SkipSet map[Category]struct{}

// NewSkipSet builds a skip set from category names. An unknown name is an
// error so typos in CLI flags or API requests surface immediately.
func NewSkipSet(names ...string) (SkipSet, error) {
	set := make(SkipSet, len(names))
	for _, name := range names {
		category, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		set[category] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the category is in the skip set.
func (s SkipSet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// Names returns the skip set's category names sorted by declaration order.
func (s SkipSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, c := range Categories {
		if s.Contains(c) {
			names = append(names, string(c))
		}
	}
	return names
}
