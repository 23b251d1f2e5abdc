package scrub

// Stats records how many replacements each category produced during a single
// Redact call. A fresh value is returned per call and never shared.
type Stats struct {
	Emails        int `json:"emails"`
	Phones        int `json:"phones"`
	Dates         int `json:"dates"`
	RelativeDates int `json:"relative_dates"`
	SSNs          int `json:"ssn"`
	MRNs          int `json:"mrn"`
	ZipCodes      int `json:"zip_codes"`
	Persons       int `json:"persons"`
	Facilities    int `json:"facilities"`
	Addresses     int `json:"addresses"`
	Coordinates   int `json:"coordinates"`
}

// Total returns the sum of all category counts.
func (s Stats) Total() int {
	return s.Emails +
		s.Phones +
		s.Dates +
		s.RelativeDates +
		s.SSNs +
		s.MRNs +
		s.ZipCodes +
		s.Persons +
		s.Facilities +
		s.Addresses +
		s.Coordinates
}
