package service

import (
	"context"

	"anoa.com/swetter/internal/modules/stat/dto"
	"anoa.com/swetter/internal/modules/stat/repository"
	userRepo "anoa.com/swetter/internal/modules/user/repository"
)

// PendingCounter reports scheduled jobs that have not fired yet.
type PendingCounter interface {
	Pending() int
}

type StatService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type statService struct {
	userRepo userRepo.UserRepository
	statRepo repository.StatRepository
	pending  PendingCounter
}

func NewStatService(userRepo userRepo.UserRepository, statRepo repository.StatRepository, pending PendingCounter) StatService {
	return &statService{
		userRepo: userRepo,
		statRepo: statRepo,
		pending:  pending,
	}
}

func (s *statService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	var (
		res dto.StatsResponse
		err error
	)

	if res.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.TotalPosts, err = s.statRepo.CountPosts(ctx); err != nil {
		return nil, err
	}
	if res.TotalComments, err = s.statRepo.CountComments(ctx); err != nil {
		return nil, err
	}
	if res.TotalReplies, err = s.statRepo.CountReplies(ctx); err != nil {
		return nil, err
	}
	if s.pending != nil {
		res.PendingAutoReplies = s.pending.Pending()
	}

	return &res, nil
}
