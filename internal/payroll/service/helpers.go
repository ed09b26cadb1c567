package service

import (
	"math"

	"github.com/bwmarrin/snowflake"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

// proratedAmount pays the base rate proportionally to the session duration:
// an hour-unit rate covers 60 minutes, a shift-unit rate 90. Rounded to the
// nearest đồng.
func proratedAmount(baseRate int64, unit ratedomain.RateUnit, minutes int) int64 {
	if minutes <= 0 {
		return 0
	}
	return int64(math.Round(float64(baseRate) * float64(minutes) / float64(unit.Minutes())))
}

// tierLookup picks the tier table and lookup key for a work type: teaching
// work tiers by the class's average student count, assistant and feedback
// work by its feedback volume. A session without a known class falls back
// to its own recorded student count.
func tierLookup(
	sess *wsdomain.WorkSession,
	classByID map[snowflake.ID]*classdomain.Class,
	teachingTiers, feedbackTiers []ratedomain.RangeTier,
) ([]ratedomain.RangeTier, int) {
	var cls *classdomain.Class
	if sess.ClassID != nil {
		cls = classByID[*sess.ClassID]
	}

	switch sess.Type {
	case wsdomain.TypeAssistant, wsdomain.TypeFeedback:
		key := 0
		if cls != nil {
			key = cls.FeedbackVolume
		}
		return feedbackTiers, key
	default:
		key := sess.StudentCount
		if cls != nil && cls.AvgStudents > 0 {
			key = cls.AvgStudents
		}
		return teachingTiers, key
	}
}
