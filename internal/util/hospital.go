package util

import "math/rand/v2"

var (
	// Institutions lists cardiology departments used for generated studies.
	Institutions = []string{
		"St. Mary Heart Center",
		"Riverside Cardiology Institute",
		"University Hospital - Echocardiography Lab",
		"Mount Hope Medical Center",
		"Lakeview Cardiovascular Clinic",
		"General Hospital Cardiac Imaging",
		"Centre Hospitalier de Cardiologie",
		"Hôpital Saint-Vincent - Échographie",
	}

	physicianTitles = []string{"Dr", "Prof"}
)

// GenerateInstitution picks an institution name.
func GenerateInstitution(rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}
	return Institutions[rng.IntN(len(Institutions))]
}

// GeneratePhysicianName returns a referring physician in DICOM person
// format with a title suffix, e.g. "Moreau^Claire^Dr".
func GeneratePhysicianName(rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}
	sex := "F"
	if rng.IntN(2) == 0 {
		sex = "M"
	}
	name := GeneratePatientName(sex, rng)
	return name + "^" + physicianTitles[rng.IntN(len(physicianTitles))]
}

// GenerateAccessionNumber returns a plausible RIS accession number.
func GenerateAccessionNumber(rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + rng.IntN(10))
	}
	return "ACC" + string(digits)
}
