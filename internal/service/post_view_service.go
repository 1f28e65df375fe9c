package service

import (
	"context"
	"time"

	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"

	"gorm.io/gorm"
)

const (
	postViewKind = "view"

	postViewResultCounted = "counted"
	postViewResultDedup   = "dedup"
	postViewResultFailed  = "failed"
)

type postViewObserver interface {
	ObservePostView(result string)
}

// PostViewService 文章浏览计数
type PostViewService struct {
	postRepo repository.PostRepository
	viewRepo repository.PostViewRepository
	metrics  postViewObserver
	now      func() time.Time
}

// PostViewInput 单次浏览上报
type PostViewInput struct {
	PostID    uint
	UID       *string
	SID       *string
	UserAgent string
	IP        string
}

// PostViewResult 浏览上报结果
type PostViewResult struct {
	Deduplicated bool
	Views        int64
}

// NewPostViewService 创建浏览计数服务
func NewPostViewService(postRepo repository.PostRepository, viewRepo repository.PostViewRepository) *PostViewService {
	return &PostViewService{
		postRepo: postRepo,
		viewRepo: viewRepo,
		now:      time.Now,
	}
}

// WithClock 注入时钟
func (s *PostViewService) WithClock(now func() time.Time) *PostViewService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithObserver 注入指标
func (s *PostViewService) WithObserver(observer postViewObserver) *PostViewService {
	s.metrics = observer
	return s
}

// RecordView 记录一次浏览，同一天同一访客重复上报只计一次
func (s *PostViewService) RecordView(ctx context.Context, input PostViewInput) (*PostViewResult, error) {
	if err := s.ensurePublished(ctx, input.PostID); err != nil {
		return nil, err
	}
	now := s.now()
	ymd := models.DateOf(now)
	row := &models.PostViewLog{
		PostID:    input.PostID,
		YMD:       ymd,
		UID:       normalizeClientToken(input.UID),
		SID:       normalizeClientToken(input.SID),
		IP:        input.IP,
		UserAgent: truncateUserAgent(input.UserAgent),
		TS:        now,
	}
	row.Fingerprint = eventFingerprint(postViewKind, ymd.String(),
		uintPart(row.PostID),
		optionalStringPart(row.UID),
		optionalStringPart(row.SID),
		row.IP,
		row.UserAgent,
	)

	var inserted bool
	err := s.viewRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.viewRepo.WithTx(tx)
		var err error
		inserted, err = repo.InsertLog(ctx, row)
		if err != nil || !inserted {
			return err
		}
		return repo.IncrementDaily(ctx, row.PostID, ymd, now)
	})
	if err != nil {
		s.observe(postViewResultFailed)
		return nil, err
	}
	if inserted {
		s.observe(postViewResultCounted)
	} else {
		s.observe(postViewResultDedup)
	}

	views, err := s.viewRepo.SumViews(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	return &PostViewResult{Deduplicated: !inserted, Views: views}, nil
}

// Views 查询文章累计浏览数
func (s *PostViewService) Views(ctx context.Context, postID uint) (int64, error) {
	if err := s.ensurePublished(ctx, postID); err != nil {
		return 0, err
	}
	return s.viewRepo.SumViews(ctx, postID)
}

func (s *PostViewService) ensurePublished(ctx context.Context, postID uint) error {
	if postID == 0 {
		return ErrPostNotFound
	}
	post, err := s.postRepo.GetPublishedByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}

func (s *PostViewService) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObservePostView(result)
	}
}
