package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/testutil"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
)

func TestGrowth(t *testing.T) {
	cases := []struct {
		previous, current, want int64
	}{
		{0, 5, 100},
		{0, 0, 0},
		{10, 5, -50},
		{4, 5, 25},
		{1, 3, 200},
		{3, 4, 33},
		{8, 9, 13},
		{2, 0, -100},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Growth(tc.previous, tc.current), "Growth(%d, %d)", tc.previous, tc.current)
	}
}

func TestParsePeriod(t *testing.T) {
	label, days, err := ParsePeriod("")
	require.NoError(t, err)
	require.Equal(t, "30d", label)
	require.Equal(t, 30, days)

	label, days, err = ParsePeriod("7D")
	require.NoError(t, err)
	require.Equal(t, "7d", label)
	require.Equal(t, 7, days)

	_, _, err = ParsePeriod("1y")
	require.True(t, apierr.IsValidation(err))
}

func pinNow(svc AnalyticsService, now time.Time) {
	svc.(*analyticsService).now = func() time.Time { return now }
}

func TestSummarizeSubscriberGrowth(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	now := testNow()
	pinNow(f.analytics, now)
	day := 24 * time.Hour

	testutil.SeedSubscriber(t, ctx, f.db, "s1@example.com", types.SubscriberStatusActive, now.Add(-1*day))
	testutil.SeedSubscriber(t, ctx, f.db, "s2@example.com", types.SubscriberStatusActive, now.Add(-2*day))
	testutil.SeedSubscriber(t, ctx, f.db, "s3@example.com", types.SubscriberStatusActive, now.Add(-3*day))
	testutil.SeedSubscriber(t, ctx, f.db, "old@example.com", types.SubscriberStatusActive, now.Add(-10*day))
	testutil.SeedSubscriber(t, ctx, f.db, "gone@example.com", types.SubscriberStatusUnsubscribed, now.Add(-1*day))

	summary, err := f.analytics.Summarize(ctx, nil, "7d")
	require.NoError(t, err)
	require.Equal(t, "7d", summary.Period.Label)
	require.Equal(t, int64(3), summary.Period.Current.Subscribers)
	require.Equal(t, int64(1), summary.Period.Previous.Subscribers)
	require.Equal(t, int64(200), summary.Growth.Subscribers)
	require.Equal(t, int64(4), summary.Totals.Subscribers)
	require.Equal(t, now.Add(-7*day), summary.Period.CurrentStart)
	require.Equal(t, now.Add(-14*day), summary.Period.PreviousStart)
	require.Equal(t, summary.Period.CurrentStart, summary.Period.PreviousEnd)
	require.Len(t, summary.RecentActivity.Subscribers, 3)
	require.Equal(t, "s1@example.com", summary.RecentActivity.Subscribers[0].Email)
}

func TestSummarizeRecentNeverExceedsTotal(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	now := testNow()
	pinNow(f.analytics, now)
	day := 24 * time.Hour

	author := testutil.SeedUser(t, ctx, f.db, "ada")
	testutil.SeedPost(t, ctx, f.db, "fresh", types.PostStatusPublished, &author.ID, now.Add(-2*day))
	testutil.SeedPost(t, ctx, f.db, "orphan", types.PostStatusPublished, nil, now.Add(-3*day))
	testutil.SeedPost(t, ctx, f.db, "draft", types.PostStatusDraft, &author.ID, now.Add(-1*day))
	testutil.SeedPost(t, ctx, f.db, "ancient", types.PostStatusPublished, &author.ID, now.Add(-200*day))
	testutil.SeedSubscriber(t, ctx, f.db, "a@example.com", types.SubscriberStatusActive, now.Add(-40*day))
	testutil.SeedSubscriber(t, ctx, f.db, "b@example.com", types.SubscriberStatusUnsubscribed, now.Add(-day))
	testutil.SeedCampaign(t, ctx, f.db, "launch")

	course := testutil.SeedCourse(t, ctx, f.db, "Go")
	student := testutil.SeedStudent(t, ctx, f.db, "learner@example.com")
	testutil.SeedEnrollment(t, ctx, f.db, course.ID, student.ID, now.Add(-day))

	for _, period := range []string{"7d", "30d", "90d"} {
		summary, err := f.analytics.Summarize(ctx, nil, period)
		require.NoError(t, err, period)
		require.LessOrEqual(t, summary.Period.Current.Posts, summary.Totals.Posts, period)
		require.LessOrEqual(t, summary.Period.Current.Subscribers, summary.Totals.Subscribers, period)
		require.LessOrEqual(t, summary.Period.Current.Enrollments, summary.Totals.Enrollments, period)
	}

	summary, err := f.analytics.Summarize(ctx, nil, "")
	require.NoError(t, err)
	require.Equal(t, "30d", summary.Period.Label)
	require.Equal(t, Totals{Courses: 1, Students: 1, Subscribers: 1, Posts: 3, Enrollments: 1, Campaigns: 1}, summary.Totals)
	require.Equal(t, int64(2), summary.Period.Current.Posts)
	require.Equal(t, int64(0), summary.Period.Current.Subscribers)
	require.Equal(t, int64(100), summary.Growth.Posts)
	require.Equal(t, int64(-100), summary.Growth.Subscribers)

	require.Len(t, summary.TopContent, 3)
	require.Equal(t, "fresh", summary.TopContent[0].Title)
	require.Equal(t, "ada", summary.TopContent[0].Author)
	require.Equal(t, UnknownAuthor, summary.TopContent[1].Author)

	require.Len(t, summary.RecentActivity.Posts, 2)
	require.Empty(t, summary.RecentActivity.Subscribers)
	require.Len(t, summary.RecentActivity.Enrollments, 1)
	recent := summary.RecentActivity.Enrollments[0]
	require.Equal(t, "Go", recent.CourseTitle)
	require.Equal(t, "learner@example.com", recent.StudentEmail)
	require.Equal(t, student.Name, recent.StudentName)
}

func TestSummarizeSurfacesStoreErrors(t *testing.T) {
	f := newFixture(t, nil)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.analytics.Summarize(context.Background(), nil, "7d")
	require.Error(t, err)

	_, err = f.analytics.Summarize(context.Background(), nil, "nope")
	require.True(t, apierr.IsValidation(err))
}

func TestStatsCountsAndFallback(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := testutil.SeedCourse(t, ctx, f.db, "Go")
	student := testutil.SeedStudent(t, ctx, f.db, "s@example.com")
	testutil.SeedEnrollment(t, ctx, f.db, course.ID, student.ID, testNow())
	testutil.SeedSubscriber(t, ctx, f.db, "sub@example.com", types.SubscriberStatusActive, testNow())

	require.Equal(t, &Stats{Courses: 1, Students: 1, Subscribers: 1, Enrollments: 1}, f.analytics.Stats(ctx, nil))

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	require.Equal(t, &Stats{}, f.analytics.Stats(ctx, nil))
}

func TestStatsUsesCache(t *testing.T) {
	cache := newFakeCache()
	f := newFixture(t, cache)
	ctx := context.Background()
	testutil.SeedCourse(t, ctx, f.db, "Go")

	first := f.analytics.Stats(ctx, nil)
	require.Equal(t, int64(1), first.Courses)
	require.Equal(t, 1, cache.sets)

	testutil.SeedCourse(t, ctx, f.db, "Rust")
	cached := f.analytics.Stats(ctx, nil)
	require.Equal(t, int64(1), cached.Courses)

	cache.getErr = errors.New("redis down")
	fresh := f.analytics.Stats(ctx, nil)
	require.Equal(t, int64(2), fresh.Courses)
}

// staleSubscriberTotals reports the total as it was before the newest
// subscriber committed, while window counts see that subscriber.
type staleSubscriberTotals struct {
	repos.SubscriberRepo
}

func (r staleSubscriberTotals) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	n, err := r.SubscriberRepo.CountActive(ctx, tx)
	return n - 1, err
}

func TestSummarizeWindowNeverExceedsTotal(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	now := testNow()
	testutil.SeedSubscriber(t, ctx, db, "a@example.com", types.SubscriberStatusActive, now.Add(-time.Hour))
	testutil.SeedSubscriber(t, ctx, db, "b@example.com", types.SubscriberStatusActive, now.Add(-2*time.Hour))

	svc := NewAnalyticsService(db, log, nil, AnalyticsDeps{
		Courses:     repos.NewCourseRepo(db, log),
		Students:    repos.NewStudentRepo(db, log),
		Enrollments: repos.NewCourseEnrollmentRepo(db, log),
		Posts:       repos.NewPostRepo(db, log),
		Subscribers: staleSubscriberTotals{SubscriberRepo: repos.NewSubscriberRepo(db, log)},
		Campaigns:   repos.NewCampaignRepo(db, log),
	})

	summary, err := svc.Summarize(ctx, nil, "7d")
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.Totals.Subscribers)
	require.Equal(t, int64(1), summary.Period.Current.Subscribers)
}
