package services

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// DefaultGenerateRows is the size of a generated demo data set.
const DefaultGenerateRows = 50

var (
	genFirstNames = []string{
		"Ahmad", "Siti", "Mohamed", "Aishah", "Daniel", "Fatimah",
		"Ryan", "Nur", "Zain", "Rina", "Nguyen", "Tao", "Ayu",
		"Juan", "Maria", "Sophea", "Lai", "Khin",
	}
	genLastNames = []string{
		"Ali", "Chong", "Kumar", "Tan", "Abdullah", "Mohd",
		"Omar", "Lim", "Hernandez", "Santos", "Ng", "Yap", "Mala", "Soe",
	}
	genRaces         = []string{"Malay", "Chinese", "Indian", "Thai", "Vietnamese", "Filipino", "Burman", "Khmer", "Other"}
	genNationalities = []string{"Malaysian", "Singaporean", "Indonesian", "Thai", "Vietnamese", "Filipino", "Burmese"}
	genOccupations   = []string{"Engineer", "Doctor", "Teacher", "Lawyer", "Artist", "Nurse", "Scientist", "Manager", "Accountant"}
	genStreets       = []string{"Merdeka", "Jaya", "Setia", "Pahlawan"}
	genCities        = []string{"Kuala Lumpur", "Bangkok", "Hanoi", "Jakarta", "Manila"}
	genEmployment    = []string{"Employed", "Unemployed", "Self-employed"}
	genFunds         = []string{"Savings", "Loan", "Gift", "Inheritance", "Income"}
	genRisk          = []string{"Low", "Medium", "High"}
	genRemarks       = []string{
		"All documents are complete.",
		"Pending verification of income details.",
		"Additional documents required.",
		"Awaiting user response.",
		"-",
	}
	genIncomeRanges = [][2]int{{30000, 50000}, {50001, 100000}, {100001, 200000}, {200001, 500000}}
)

// GenerateApplicants builds a demo record set of n applicants with ids
// APP001, APP002 and so on, submitted within the 30 days before now.
// The same rng seed and now always produce the same set.
func GenerateApplicants(rng *rand.Rand, n int, now time.Time) (domain.RecordSet, error) {
	if n < 1 {
		return domain.RecordSet{}, fmt.Errorf("%w: row count must be positive, got %d", domain.ErrInvalidInput, n)
	}
	if rng == nil {
		return domain.RecordSet{}, fmt.Errorf("%w: random source is required", domain.ErrInvalidInput)
	}

	set := domain.RecordSet{
		Columns: append([]string(nil), domain.DefaultColumns...),
		Records: make([]domain.ApplicantRecord, 0, n),
	}
	for i := range n {
		set.Records = append(set.Records, generateApplicant(rng, i+1, now))
	}
	return set, nil
}

func generateApplicant(rng *rand.Rand, seq int, now time.Time) domain.ApplicantRecord {
	applied := now.Add(-time.Duration(rng.IntN(30)+1) * 24 * time.Hour).
		Add(-time.Duration(rng.IntN(24)) * time.Hour).
		Add(-time.Duration(rng.IntN(60)) * time.Minute).
		Truncate(time.Minute)

	income := genIncomeRanges[rng.IntN(len(genIncomeRanges))]
	annual := income[0] + rng.IntN(income[1]-income[0]+1)
	netWorth := int(float64(annual) * (1 + 4*rng.Float64()))
	born := now.AddDate(0, 0, -(18*365 + rng.IntN(47*365)))

	return domain.ApplicantRecord{
		ID:              fmt.Sprintf("APP%03d", seq),
		ApplicationDate: applied,
		FullName:        pick(rng, genFirstNames) + " " + pick(rng, genLastNames),
		Status:          domain.AllStatuses[rng.IntN(len(domain.AllStatuses))],
		RatingScore:     rng.IntN(10) + 1,
		Activity:        domain.NewActivityFeed(applied, rng.IntN(len(domain.ActivityStages))+1),
		Attributes: map[string]string{
			domain.ColumnAdditionalRemarks: pick(rng, genRemarks),
			domain.ColumnDateOfBirth:       born.Format("2006-01-02"),
			domain.ColumnGender:            pick(rng, []string{"Male", "Female"}),
			domain.ColumnRace:              pick(rng, genRaces),
			domain.ColumnNationality:       pick(rng, genNationalities),
			domain.ColumnAddress: fmt.Sprintf("%d, Jalan %s, %s",
				rng.IntN(100)+1, pick(rng, genStreets), pick(rng, genCities)),
			domain.ColumnEmploymentStatus:      pick(rng, genEmployment),
			domain.ColumnOccupation:            pick(rng, genOccupations),
			domain.ColumnAnnualIncome:          strconv.Itoa(annual),
			domain.ColumnNetWorth:              strconv.Itoa(netWorth),
			domain.ColumnAttempts:              strconv.Itoa(rng.IntN(5) + 1),
			domain.ColumnTimeTaken:             strconv.Itoa(rng.IntN(91) + 30),
			domain.ColumnSourceOfFunds:         pick(rng, genFunds),
			domain.ColumnRiskLevel:             pick(rng, genRisk),
			domain.ColumnComplianceProbability: strconv.Itoa(rng.IntN(101)),
			domain.ColumnPhotoMatched:          strconv.Itoa(rng.IntN(2)),
			domain.ColumnICVerified:            strconv.Itoa(rng.IntN(2)),
		},
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
