package cachestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oshawa-scheduler/core/internal/models"
	"github.com/oshawa-scheduler/core/internal/store"
	appErrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Config holds the TTLs applied to each cached lookup.
type Config struct {
	// LinkedCRNsTTL is normally zero (no expiry): a section's link groups
	// never change for the life of a term.
	LinkedCRNsTTL time.Duration
	// EnrollmentInfoTTL bounds how stale a cached seat count may be.
	EnrollmentInfoTTL time.Duration
}

// Store decorates a store.SectionStore, caching LinkedCRNs and
// EnrollmentInfo lookups through a Repository. SectionsFor passes straight
// through: it is already a single batched call per request.
type Store struct {
	inner  store.SectionStore
	repo   Repository
	cfg    Config
	logger *zap.Logger
}

// New builds a caching decorator around inner.
func New(inner store.SectionStore, repo Repository, cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{inner: inner, repo: repo, cfg: cfg, logger: logger}
}

// SectionsFor delegates directly; batch section fetches aren't cached.
func (s *Store) SectionsFor(ctx context.Context, term string, courseCodes []string) (map[string]*models.Section, error) {
	return s.inner.SectionsFor(ctx, term, courseCodes)
}

// LinkedCRNs caches the inner lookup indefinitely per (term, CRN).
func (s *Store) LinkedCRNs(ctx context.Context, section *models.Section) (models.LinkedCRNs, error) {
	key := linkedCRNsKey(section)

	var cached models.LinkedCRNs
	if err := s.repo.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("linked_crns cache get failed", zap.String("key", key), zap.Error(err))
	}

	groups, err := s.inner.LinkedCRNs(ctx, section)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Set(ctx, key, groups, s.cfg.LinkedCRNsTTL); err != nil {
		s.logger.Warn("linked_crns cache set failed", zap.String("key", key), zap.Error(err))
	}
	return groups, nil
}

// EnrollmentInfo caches the inner lookup for EnrollmentInfoTTL. forceRefresh
// skips the cached read and asks the inner store for a fresh value, which is
// then written back to the cache.
func (s *Store) EnrollmentInfo(ctx context.Context, section *models.Section, forceRefresh bool) (models.EnrollmentInfo, error) {
	key := enrollmentInfoKey(section)

	if !forceRefresh {
		var cached models.EnrollmentInfo
		if err := s.repo.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("enrollment_info cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	info, err := s.inner.EnrollmentInfo(ctx, section, forceRefresh)
	if err != nil {
		return models.EnrollmentInfo{}, err
	}

	if err := s.repo.Set(ctx, key, info, s.cfg.EnrollmentInfoTTL); err != nil {
		s.logger.Warn("enrollment_info cache set failed", zap.String("key", key), zap.Error(err))
	}
	return info, nil
}

func linkedCRNsKey(section *models.Section) string {
	return fmt.Sprintf("linked_crns:%s:%s", section.TermID, section.CourseReferenceNumber)
}

func enrollmentInfoKey(section *models.Section) string {
	return fmt.Sprintf("enrollment_info:%s:%s", section.TermID, section.CourseReferenceNumber)
}
