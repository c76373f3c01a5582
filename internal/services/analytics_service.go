package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/models"
)

// WeekBucket is one ISO week's session count.
type WeekBucket struct {
	Week  string `json:"week"` // "2025-W11"
	Count int    `json:"count"`
}

// MentorAnalytics summarises a mentor's activity.
type MentorAnalytics struct {
	MentorID        string       `json:"mentor_id"`
	SessionCount    int64        `json:"session_count"`
	AverageRating   float64      `json:"average_rating"`
	RatingCount     int64        `json:"rating_count"`
	SessionsPerWeek []WeekBucket `json:"sessions_per_week"`
}

// MenteeMentorStats summarises a mentee's history with one mentor.
type MenteeMentorStats struct {
	MentorID      string  `json:"mentor_id"`
	MentorName    string  `json:"mentor_name"`
	SessionCount  int64   `json:"session_count"`
	AverageRating float64 `json:"average_rating"`
}

// MenteeAnalytics summarises a mentee's activity per mentor.
type MenteeAnalytics struct {
	MenteeID string              `json:"mentee_id"`
	Mentors  []MenteeMentorStats `json:"mentors"`
}

// AnalyticsOption customises an AnalyticsService.
type AnalyticsOption func(*AnalyticsService)

// WithAnalyticsClock overrides the time source, used by tests.
func WithAnalyticsClock(clock func() time.Time) AnalyticsOption {
	return func(s *AnalyticsService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// AnalyticsService aggregates session and feedback history. Week bucketing is
// done in Go so the queries stay portable across the supported databases.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *gorm.DB, opts ...AnalyticsOption) (*AnalyticsService, error) {
	if db == nil {
		return nil, errors.New("analytics service: db is required")
	}
	svc := &AnalyticsService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// trailingWeeks is how many ISO weeks of history the mentor view covers.
const trailingWeeks = 8

// ForMentor returns a mentor's average received rating and session volume,
// including per-week counts over the trailing eight ISO weeks.
func (s *AnalyticsService) ForMentor(ctx context.Context, mentorID string) (*MentorAnalytics, error) {
	ctx = ensureContext(ctx)

	out := MentorAnalytics{MentorID: mentorID}

	if err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("mentor_id = ? AND status <> ?", mentorID, models.SessionStatusCancelled).
		Count(&out.SessionCount).Error; err != nil {
		return nil, fmt.Errorf("analytics service: count sessions: %w", err)
	}

	var ratings []int
	if err := s.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("to_user_id = ?", mentorID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, fmt.Errorf("analytics service: load ratings: %w", err)
	}
	out.RatingCount = int64(len(ratings))
	out.AverageRating = averageRating(ratings)

	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -7*trailingWeeks)

	var scheduled []time.Time
	if err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("mentor_id = ? AND status <> ? AND scheduled_at >= ?",
			mentorID, models.SessionStatusCancelled, windowStart).
		Pluck("scheduled_at", &scheduled).Error; err != nil {
		return nil, fmt.Errorf("analytics service: load session times: %w", err)
	}
	out.SessionsPerWeek = bucketByISOWeek(scheduled, now)

	return &out, nil
}

// ForMentee returns a mentee's session counts and the average rating they gave
// each mentor.
func (s *AnalyticsService) ForMentee(ctx context.Context, menteeID string) (*MenteeAnalytics, error) {
	ctx = ensureContext(ctx)

	var sessions []models.Session
	if err := s.db.WithContext(ctx).
		Preload("Mentor").
		Where("mentee_id = ? AND status <> ?", menteeID, models.SessionStatusCancelled).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("analytics service: load sessions: %w", err)
	}

	var given []models.Feedback
	if err := s.db.WithContext(ctx).
		Where("from_user_id = ?", menteeID).
		Find(&given).Error; err != nil {
		return nil, fmt.Errorf("analytics service: load feedback: %w", err)
	}
	ratingsByMentor := make(map[string][]int)
	for _, f := range given {
		ratingsByMentor[f.ToUserID] = append(ratingsByMentor[f.ToUserID], f.Rating)
	}

	byMentor := make(map[string]*MenteeMentorStats)
	for _, session := range sessions {
		stats, ok := byMentor[session.MentorID]
		if !ok {
			stats = &MenteeMentorStats{MentorID: session.MentorID}
			if session.Mentor != nil {
				stats.MentorName = session.Mentor.Name
			}
			byMentor[session.MentorID] = stats
		}
		stats.SessionCount++
	}
	for mentorID, stats := range byMentor {
		stats.AverageRating = averageRating(ratingsByMentor[mentorID])
	}

	out := MenteeAnalytics{MenteeID: menteeID, Mentors: make([]MenteeMentorStats, 0, len(byMentor))}
	for _, stats := range byMentor {
		out.Mentors = append(out.Mentors, *stats)
	}
	sort.Slice(out.Mentors, func(i, j int) bool {
		if out.Mentors[i].SessionCount != out.Mentors[j].SessionCount {
			return out.Mentors[i].SessionCount > out.Mentors[j].SessionCount
		}
		return out.Mentors[i].MentorID < out.Mentors[j].MentorID
	})

	return &out, nil
}

func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// bucketByISOWeek produces one bucket per trailing ISO week ending at now,
// oldest first, with zero-filled gaps.
func bucketByISOWeek(instants []time.Time, now time.Time) []WeekBucket {
	counts := make(map[string]int, len(instants))
	for _, t := range instants {
		counts[isoWeekLabel(t.UTC())]++
	}

	buckets := make([]WeekBucket, 0, trailingWeeks)
	for i := trailingWeeks - 1; i >= 0; i-- {
		label := isoWeekLabel(now.AddDate(0, 0, -7*i))
		buckets = append(buckets, WeekBucket{Week: label, Count: counts[label]})
	}
	return buckets
}

func isoWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
