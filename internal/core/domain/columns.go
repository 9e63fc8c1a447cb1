package domain

import "strings"

// Column names of the backing tabular source.
const (
	ColumnID              = "Applicant ID"
	ColumnApplicationDate = "Application Date"
	ColumnFullName        = "Full Name"
	ColumnStatus          = "Status"
	ColumnDetails         = "Details"

	ColumnRatingScore           = "Rating Score"
	ColumnAdditionalRemarks     = "Additional Remarks"
	ColumnDateOfBirth           = "Date of Birth"
	ColumnGender                = "Gender"
	ColumnRace                  = "Race"
	ColumnNationality           = "Nationality"
	ColumnAddress               = "Address"
	ColumnEmploymentStatus      = "Employment Status"
	ColumnOccupation            = "Occupation"
	ColumnAnnualIncome          = "Annual Income (RM)"
	ColumnNetWorth              = "Net Worth (RM)"
	ColumnAttempts              = "Attempt of Application"
	ColumnTimeTaken             = "Time Taken (minutes)"
	ColumnSourceOfFunds         = "Source of Funds"
	ColumnRiskLevel             = "Risk Level"
	ColumnComplianceProbability = "Compliance Probability"
	ColumnPhotoMatched          = "PHOTO MATCHED"
	ColumnICVerified            = "IC VERIFIED"
	ColumnActivityFeed          = "Activity Feed"
)

// Placeholder is rendered for optional fields the source does not supply.
const Placeholder = "N/A"

// RequiredColumns is the column contract every backing source must satisfy.
var RequiredColumns = []string{
	ColumnID,
	ColumnApplicationDate,
	ColumnFullName,
	ColumnStatus,
	ColumnDetails,
}

// DefaultColumns is the full column order written by new sources.
var DefaultColumns = []string{
	ColumnID,
	ColumnApplicationDate,
	ColumnFullName,
	ColumnStatus,
	ColumnRatingScore,
	ColumnDetails,
	ColumnAdditionalRemarks,
	ColumnDateOfBirth,
	ColumnGender,
	ColumnRace,
	ColumnNationality,
	ColumnAddress,
	ColumnEmploymentStatus,
	ColumnOccupation,
	ColumnAnnualIncome,
	ColumnNetWorth,
	ColumnAttempts,
	ColumnTimeTaken,
	ColumnSourceOfFunds,
	ColumnRiskLevel,
	ColumnComplianceProbability,
	ColumnPhotoMatched,
	ColumnICVerified,
	ColumnActivityFeed,
}

// MissingColumns returns the required columns absent from header, in contract order.
// Header names are compared after trimming surrounding whitespace.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[NormaliseColumn(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// IsCoreColumn reports whether the column maps to a typed ApplicantRecord field.
func IsCoreColumn(name string) bool {
	switch name {
	case ColumnID, ColumnApplicationDate, ColumnFullName, ColumnStatus, ColumnDetails,
		ColumnRatingScore, ColumnActivityFeed:
		return true
	default:
		return false
	}
}

// NormaliseColumn trims whitespace and a leading byte order mark from a header cell.
func NormaliseColumn(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}
