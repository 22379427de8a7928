package domain

// Metric names a counter tracked by UserProgress.
type Metric string

const (
	MetricStudyPoints       Metric = "study_points"
	MetricFlashcardsStudied Metric = "flashcards_studied"
	MetricQuizzesCompleted  Metric = "quizzes_completed"
	MetricStreakDays        Metric = "streak_days"
)

// Badge is a one-time achievement unlocked when a metric first reaches its
// threshold.
type Badge struct {
	ID        string
	Name      string
	Metric    Metric
	Threshold int
}

// Badges lists every badge, ordered by threshold within each metric.
// Streak badges key off the current streak reaching the threshold.
var Badges = []Badge{
	{ID: "points_10", Name: "You've got a Point", Metric: MetricStudyPoints, Threshold: 10},
	{ID: "points_100", Name: "Point Collector", Metric: MetricStudyPoints, Threshold: 100},
	{ID: "points_250", Name: "Point Hoarder", Metric: MetricStudyPoints, Threshold: 250},
	{ID: "points_500", Name: "Point Magnate", Metric: MetricStudyPoints, Threshold: 500},
	{ID: "points_1000", Name: "Point Tycoon", Metric: MetricStudyPoints, Threshold: 1000},
	{ID: "points_10000", Name: "Point Legend", Metric: MetricStudyPoints, Threshold: 10000},

	{ID: "studied_10", Name: "Getting Flashy", Metric: MetricFlashcardsStudied, Threshold: 10},
	{ID: "studied_50", Name: "Card Shark", Metric: MetricFlashcardsStudied, Threshold: 50},
	{ID: "studied_100", Name: "Century of Cards", Metric: MetricFlashcardsStudied, Threshold: 100},
	{ID: "studied_250", Name: "Deck Veteran", Metric: MetricFlashcardsStudied, Threshold: 250},
	{ID: "studied_500", Name: "Flashcard Fiend", Metric: MetricFlashcardsStudied, Threshold: 500},
	{ID: "studied_1000", Name: "Thousand-Card Scholar", Metric: MetricFlashcardsStudied, Threshold: 1000},

	{ID: "quizzes_5", Name: "Quiz Curious", Metric: MetricQuizzesCompleted, Threshold: 5},
	{ID: "quizzes_20", Name: "Quiz Regular", Metric: MetricQuizzesCompleted, Threshold: 20},
	{ID: "quizzes_50", Name: "Quiz Whiz", Metric: MetricQuizzesCompleted, Threshold: 50},
	{ID: "quizzes_100", Name: "Quiz Centurion", Metric: MetricQuizzesCompleted, Threshold: 100},
	{ID: "quizzes_250", Name: "Quiz Addict", Metric: MetricQuizzesCompleted, Threshold: 250},
	{ID: "quizzes_500", Name: "Quiz Machine", Metric: MetricQuizzesCompleted, Threshold: 500},
	{ID: "quizzes_1000", Name: "Quiz Immortal", Metric: MetricQuizzesCompleted, Threshold: 1000},

	{ID: "streak_7", Name: "One Week Wonder", Metric: MetricStreakDays, Threshold: 7},
	{ID: "streak_14", Name: "Fortnight Fighter", Metric: MetricStreakDays, Threshold: 14},
	{ID: "streak_30", Name: "Monthly Devotee", Metric: MetricStreakDays, Threshold: 30},
	{ID: "streak_90", Name: "Quarterly Constant", Metric: MetricStreakDays, Threshold: 90},
	{ID: "streak_180", Name: "Half-Year Hero", Metric: MetricStreakDays, Threshold: 180},
	{ID: "streak_365", Name: "Year-Round Scholar", Metric: MetricStreakDays, Threshold: 365},
}

// MetricValue returns the current value of a metric.
func (p *UserProgress) MetricValue(m Metric) int {
	switch m {
	case MetricStudyPoints:
		return p.StudyPoints
	case MetricFlashcardsStudied:
		return p.FlashcardsStudied
	case MetricQuizzesCompleted:
		return p.QuizzesCompleted
	case MetricStreakDays:
		return p.CurrentStreakDays
	default:
		return 0
	}
}

// EvaluateBadges checks every badge threshold against the current counters,
// records any badge crossed for the first time and returns the newly unlocked
// ones. Re-evaluating with unchanged metrics unlocks nothing.
func (p *UserProgress) EvaluateBadges() []Badge {
	var unlocked []Badge
	for _, b := range Badges {
		if p.HasBadge(b.ID) {
			continue
		}
		if p.MetricValue(b.Metric) >= b.Threshold {
			p.EarnedBadges = append(p.EarnedBadges, b.ID)
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// BadgeByID looks up a badge definition.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
