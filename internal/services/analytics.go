package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

const (
	DefaultPeriod      = "30d"
	UnknownAuthor      = "Unknown Author"
	topContentLimit    = 5
	recentPerTypeLimit = 5
	recentActivityDays = 7
	statsCacheKey      = "analytics:stats"
)

var periodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// ParsePeriod maps a period label to its length in days. Empty means 30d.
func ParsePeriod(raw string) (string, int, error) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		label = DefaultPeriod
	}
	days, ok := periodDays[label]
	if !ok {
		return "", 0, apierr.Validation("period", "period must be one of 7d, 30d, 90d")
	}
	return label, days, nil
}

// Growth is the whole-number percentage change from previous to current,
// rounded half up. A window with no previous activity reports 100 when
// anything happened and 0 otherwise.
func Growth(previous, current int64) int64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := float64(current-previous) / float64(previous) * 100
	return int64(math.Floor(pct + 0.5))
}

type Totals struct {
	Courses     int64 `json:"courses"`
	Students    int64 `json:"students"`
	Subscribers int64 `json:"subscribers"`
	Posts       int64 `json:"posts"`
	Enrollments int64 `json:"enrollments"`
	Campaigns   int64 `json:"campaigns"`
}

type WindowCounts struct {
	Posts       int64 `json:"posts"`
	Subscribers int64 `json:"subscribers"`
	Enrollments int64 `json:"enrollments"`
}

type PeriodWindow struct {
	Label         string       `json:"label"`
	Days          int          `json:"days"`
	CurrentStart  time.Time    `json:"currentStart"`
	PreviousStart time.Time    `json:"previousStart"`
	PreviousEnd   time.Time    `json:"previousEnd"`
	Current       WindowCounts `json:"current"`
	Previous      WindowCounts `json:"previous"`
}

type TopContentItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentSubscriber struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentEnrollment struct {
	ID           uint      `json:"id"`
	CourseID     uint      `json:"courseId"`
	CourseTitle  string    `json:"courseTitle"`
	StudentID    uint      `json:"studentId"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RecentActivity struct {
	Posts       []TopContentItem   `json:"posts"`
	Subscribers []RecentSubscriber `json:"subscribers"`
	Enrollments []RecentEnrollment `json:"enrollments"`
}

type Summary struct {
	Totals         Totals           `json:"totals"`
	Growth         WindowCounts     `json:"growth"`
	Period         PeriodWindow     `json:"period"`
	TopContent     []TopContentItem `json:"topContent"`
	RecentActivity RecentActivity   `json:"recentActivity"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

type Stats struct {
	Courses     int64 `json:"courses"`
	Students    int64 `json:"students"`
	Subscribers int64 `json:"subscribers"`
	Enrollments int64 `json:"enrollments"`
}

// JSONCache is the slice of a key/value cache the stats path needs.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AnalyticsService interface {
	Summarize(ctx context.Context, tx *gorm.DB, period string) (*Summary, error)
	// Stats never fails; on any store error it returns all zeros.
	Stats(ctx context.Context, tx *gorm.DB) *Stats
}

type analyticsService struct {
	db             *gorm.DB
	log            *logger.Logger
	metrics        *observability.Metrics
	courseRepo     repos.CourseRepo
	studentRepo    repos.StudentRepo
	enrollmentRepo repos.CourseEnrollmentRepo
	postRepo       repos.PostRepo
	subscriberRepo repos.SubscriberRepo
	campaignRepo   repos.CampaignRepo
	cache          JSONCache
	cacheTTL       time.Duration
	now            func() time.Time
}

type AnalyticsDeps struct {
	Courses     repos.CourseRepo
	Students    repos.StudentRepo
	Enrollments repos.CourseEnrollmentRepo
	Posts       repos.PostRepo
	Subscribers repos.SubscriberRepo
	Campaigns   repos.CampaignRepo
	// Cache is optional.
	Cache    JSONCache
	CacheTTL time.Duration
}

func NewAnalyticsService(db *gorm.DB, baseLog *logger.Logger, metrics *observability.Metrics, deps AnalyticsDeps) AnalyticsService {
	serviceLog := baseLog.With("service", "AnalyticsService")
	return &analyticsService{
		db:             db,
		log:            serviceLog,
		metrics:        metrics,
		courseRepo:     deps.Courses,
		studentRepo:    deps.Students,
		enrollmentRepo: deps.Enrollments,
		postRepo:       deps.Posts,
		subscriberRepo: deps.Subscribers,
		campaignRepo:   deps.Campaigns,
		cache:          deps.Cache,
		cacheTTL:       deps.CacheTTL,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (as *analyticsService) Summarize(ctx context.Context, tx *gorm.DB, period string) (*Summary, error) {
	transaction := tx
	if transaction == nil {
		transaction = as.db
	}

	label, days, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "analytics.summarize")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.period", label))

	started := time.Now()
	now := as.now()
	window := time.Duration(days) * 24 * time.Hour
	currentStart := now.Add(-window)
	previousStart := currentStart.Add(-window)
	recentSince := now.Add(-recentActivityDays * 24 * time.Hour)

	out := &Summary{
		Period: PeriodWindow{
			Label:         label,
			Days:          days,
			CurrentStart:  currentStart,
			PreviousStart: previousStart,
			PreviousEnd:   currentStart,
		},
		GeneratedAt: now,
	}

	var (
		recentPosts       []*types.Post
		recentSubscribers []*types.Subscriber
		recentEnrollments []*types.CourseEnrollment
		topPosts          []*types.Post
	)

	// Each goroutine writes to its own destination.
	g, gctx := errgroup.WithContext(ctx)
	if tx != nil {
		// A caller transaction pins one connection.
		g.SetLimit(1)
	}
	count := func(dst *int64, what string, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", what, err)
			}
			*dst = n
			return nil
		})
	}
	between := func(from, to time.Time, fn func(context.Context, *gorm.DB, time.Time, time.Time) (int64, error)) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) { return fn(ctx, transaction, from, to) }
	}
	total := func(fn func(context.Context, *gorm.DB) (int64, error)) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) { return fn(ctx, transaction) }
	}

	count(&out.Totals.Courses, "courses", total(as.courseRepo.Count))
	count(&out.Totals.Students, "students", total(as.studentRepo.Count))
	count(&out.Totals.Subscribers, "subscribers", total(as.subscriberRepo.CountActive))
	count(&out.Totals.Posts, "posts", total(as.postRepo.CountPublished))
	count(&out.Totals.Enrollments, "enrollments", total(as.enrollmentRepo.Count))
	count(&out.Totals.Campaigns, "campaigns", total(as.campaignRepo.Count))

	count(&out.Period.Current.Posts, "current posts", between(currentStart, now, as.postRepo.CountPublishedCreatedBetween))
	count(&out.Period.Current.Subscribers, "current subscribers", between(currentStart, now, as.subscriberRepo.CountActiveCreatedBetween))
	count(&out.Period.Current.Enrollments, "current enrollments", between(currentStart, now, as.enrollmentRepo.CountCreatedBetween))
	count(&out.Period.Previous.Posts, "previous posts", between(previousStart, currentStart, as.postRepo.CountPublishedCreatedBetween))
	count(&out.Period.Previous.Subscribers, "previous subscribers", between(previousStart, currentStart, as.subscriberRepo.CountActiveCreatedBetween))
	count(&out.Period.Previous.Enrollments, "previous enrollments", between(previousStart, currentStart, as.enrollmentRepo.CountCreatedBetween))

	g.Go(func() error {
		rows, err := as.postRepo.ListRecentPublished(gctx, transaction, time.Time{}, topContentLimit)
		if err != nil {
			return fmt.Errorf("top content: %w", err)
		}
		topPosts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := as.postRepo.ListRecentPublished(gctx, transaction, recentSince, recentPerTypeLimit)
		if err != nil {
			return fmt.Errorf("recent posts: %w", err)
		}
		recentPosts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := as.subscriberRepo.ListRecentActive(gctx, transaction, recentSince, recentPerTypeLimit)
		if err != nil {
			return fmt.Errorf("recent subscribers: %w", err)
		}
		recentSubscribers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := as.enrollmentRepo.ListRecent(gctx, transaction, recentSince, recentPerTypeLimit)
		if err != nil {
			return fmt.Errorf("recent enrollments: %w", err)
		}
		recentEnrollments = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		as.log.Error("Analytics summary failed", "period", label, "error", err)
		return nil, err
	}

	out.Period.Current = out.Period.Current.boundedBy(out.Totals)
	out.Growth = WindowCounts{
		Posts:       Growth(out.Period.Previous.Posts, out.Period.Current.Posts),
		Subscribers: Growth(out.Period.Previous.Subscribers, out.Period.Current.Subscribers),
		Enrollments: Growth(out.Period.Previous.Enrollments, out.Period.Current.Enrollments),
	}
	out.TopContent = postItems(topPosts)
	out.RecentActivity = RecentActivity{
		Posts:       postItems(recentPosts),
		Subscribers: subscriberItems(recentSubscribers),
		Enrollments: enrollmentItems(recentEnrollments),
	}

	as.metrics.ObserveSummary(label, time.Since(started))
	return out, nil
}

// boundedBy caps window counts at the matching totals. The counts come from
// separate statements, so a row committed between them can otherwise put a
// window above its total.
func (w WindowCounts) boundedBy(t Totals) WindowCounts {
	return WindowCounts{
		Posts:       min(w.Posts, t.Posts),
		Subscribers: min(w.Subscribers, t.Subscribers),
		Enrollments: min(w.Enrollments, t.Enrollments),
	}
}

func postItems(posts []*types.Post) []TopContentItem {
	out := make([]TopContentItem, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		author := UnknownAuthor
		if p.Author != nil && strings.TrimSpace(p.Author.Name) != "" {
			author = p.Author.Name
		}
		out = append(out, TopContentItem{
			ID:        p.ID,
			Title:     p.Title,
			Slug:      p.Slug,
			Author:    author,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}

func subscriberItems(subs []*types.Subscriber) []RecentSubscriber {
	out := make([]RecentSubscriber, 0, len(subs))
	for _, s := range subs {
		if s == nil {
			continue
		}
		out = append(out, RecentSubscriber{ID: s.ID, Email: s.Email, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out
}

func enrollmentItems(rows []*types.CourseEnrollment) []RecentEnrollment {
	out := make([]RecentEnrollment, 0, len(rows))
	for _, e := range rows {
		if e == nil {
			continue
		}
		item := RecentEnrollment{
			ID:        e.ID,
			CourseID:  e.CourseID,
			StudentID: e.StudentID,
			CreatedAt: e.CreatedAt,
		}
		if e.Course != nil {
			item.CourseTitle = e.Course.Title
		}
		if e.Student != nil {
			item.StudentName = e.Student.Name
			item.StudentEmail = e.Student.Email
		}
		out = append(out, item)
	}
	return out
}

func (as *analyticsService) Stats(ctx context.Context, tx *gorm.DB) *Stats {
	transaction := tx
	if transaction == nil {
		transaction = as.db
	}

	if as.cache != nil {
		var cached Stats
		hit, err := as.cache.GetJSON(ctx, statsCacheKey, &cached)
		switch {
		case err != nil:
			as.metrics.RecordStatsCache("error")
			as.log.Warn("Stats cache read failed", "error", err)
		case hit:
			as.metrics.RecordStatsCache("hit")
			return &cached
		default:
			as.metrics.RecordStatsCache("miss")
		}
	}

	stats := &Stats{}
	g, gctx := errgroup.WithContext(ctx)
	if tx != nil {
		g.SetLimit(1)
	}
	g.Go(func() error {
		n, err := as.courseRepo.Count(gctx, transaction)
		stats.Courses = n
		return err
	})
	g.Go(func() error {
		n, err := as.studentRepo.Count(gctx, transaction)
		stats.Students = n
		return err
	})
	g.Go(func() error {
		n, err := as.subscriberRepo.CountActive(gctx, transaction)
		stats.Subscribers = n
		return err
	})
	g.Go(func() error {
		n, err := as.enrollmentRepo.Count(gctx, transaction)
		stats.Enrollments = n
		return err
	})
	if err := g.Wait(); err != nil {
		as.metrics.RecordStatsFallback()
		as.log.Warn("Stats unavailable; serving zeros", "error", err)
		return &Stats{}
	}

	if as.cache != nil {
		if err := as.cache.SetJSON(ctx, statsCacheKey, stats, as.cacheTTL); err != nil {
			as.log.Warn("Stats cache write failed", "error", err)
		}
	}
	return stats
}
