package scrub

// Built-in term lists. These are starting points, not exhaustive rosters;
// deployments extend them through Config.Names and Config.Keywords.

// defaultSurnames covers the most common surnames seen in US clinical notes.
var defaultSurnames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts", "Gomez", "Phillips", "Turner", "Parker", "Evans", "Edwards",
	"Collins", "Stewart", "Morris", "Murphy", "Cook", "Rogers", "Morgan",
	"Patel", "Singh", "Khan", "Ali", "Mohammed", "Mohammad", "Abdullah", "Hussain", "Kim", "Park",
	"Chen", "Wang", "Zhang", "Lin", "Tran", "Ng", "Chaudhry", "Ahmad", "Iqbal", "Rahman",
}

// defaultFirstNames feeds the first+surname person detector.
var defaultFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "William", "Elizabeth",
	"David", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
	"Christopher", "Nancy", "Daniel", "Lisa", "Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra",
	"Donald", "Ashley", "Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
	"Kenneth", "Dorothy", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa", "Timothy", "Deborah",
	"Ronald", "Stephanie", "Edward", "Rebecca", "Jason", "Sharon", "Jeffrey", "Laura", "Ryan", "Cynthia",
	"Jacob", "Kathleen", "Gary", "Amy", "Nicholas", "Shirley", "Eric", "Angela", "Jonathan", "Helen",
	"Stephen", "Anna", "Larry", "Brenda", "Justin", "Pamela", "Scott", "Nicole", "Brandon", "Samantha",
	"Frank", "Katherine", "Benjamin", "Emma", "Gregory", "Ruth", "Samuel", "Christine", "Patrick", "Catherine",
	"Alexander", "Debra", "Jack", "Rachel", "Dennis", "Carolyn", "Jerry", "Janet", "Tyler", "Maria",
	"Mohammed", "Muhammad", "Ahmed", "Ahmad", "Omar", "Hassan", "Hussein", "Abdullah", "Fatima", "Aisha",
	"Amelia", "Priya", "Anjali", "Sofia", "Noor", "Amina", "Li", "Wei", "Min", "Hao",
	"Jin", "Sang", "Hye", "Yuki", "Mei", "Ravi", "Imran", "Farah", "Leila", "Zara",
}

// defaultFacilityTerms seeds the facility dictionary.
var defaultFacilityTerms = []string{
	"General Hospital",
	"Medical Center",
	"Children's Hospital",
	"Urgent Care",
	"Cardiology Clinic",
	"Dialysis Center",
	"Health System",
	"Cancer Institute",
	"Family Practice",
	"Primary Care",
	"Internal Medicine",
}

// nameStoplist holds clinical abbreviations and jargon that the person
// detectors routinely mistake for names. Entries are compared against the
// uppercased, punctuation-stripped candidate.
var nameStoplist = map[string]struct{}{
	"CKD":          {},
	"ESBL":         {},
	"ICU":          {},
	"BKA":          {},
	"IDDM":         {},
	"MRSA":         {},
	"ASTHMA":       {},
	"DIALYSIS":     {},
	"MEROPENEM":    {},
	"SEPSIS":       {},
	"HYPERTENSION": {},
	"DIABETES":     {},
	"E COLI":       {},
	"HGB":          {},
	"HCT":          {},
	"POC":          {},
	"IV":           {},
}
