package app

import (
	"time"

	"ella_estate/internal/domain"
)

// DemoSnapshot is the seeded review set used when demo mode is switched on
// and no real fetch has ever succeeded. Content mirrors real guest reviews
// so the section renders sensibly offline.
func DemoSnapshot() domain.ReviewsSnapshot {
	mk := func(id, author, text string, stars int, day string) domain.Review {
		t, _ := time.Parse("2006-01-02", day)
		return domain.Review{
			ID:        id,
			Author:    author,
			Rating:    stars,
			Text:      &text,
			CreatedAt: t.Add(10 * time.Hour),
		}
	}
	snap := domain.ReviewsSnapshot{
		Reviews: []domain.Review{
			mk("demo_1", "דני כהן", "מקום מדהים! השירות מעולה והאווירה נפלאה. בהחלט אמליץ לכל מי שמחפש מקום מיוחד לנופש.", 5, "2024-01-15"),
			mk("demo_2", "שרה לוי", "חוויה מושלמת! המקום נקי ומסודר, הצוות מקצועי וחם. נחזור בהחלט.", 5, "2024-01-10"),
			mk("demo_3", "מיכאל אברהם", "מקום יפה ושליו. השירות טוב והמחירים הוגנים. מומלץ בחום.", 4, "2024-01-05"),
			mk("demo_4", "רחל גולדברג", "אחוזת האלה היא פנינה אמיתית! המקום מטופח, האווירה קסומה והשירות מעל ומעבר.", 5, "2024-01-01"),
			mk("demo_5", "יוסי מזרחי", "מקום מדהים לזוגות ומשפחות. הנוף מרהיב, השירות מקצועי והמחירים סבירים.", 5, "2023-12-28"),
			mk("demo_6", "תמר רוזן", "מקום נחמד ושליו. האווירה טובה והצוות אדיב. מומלץ למי שמחפש מנוחה ושלווה.", 4, "2023-12-25"),
		},
		AverageRating: 4.8,
	}
	snap.TotalCount = len(snap.Reviews)
	snap.SortNewestFirst()
	return snap
}
