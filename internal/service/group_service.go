package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"
	"trivia_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activeGroupsCacheTTL = 30 * time.Second

type GroupService struct {
	GroupRepo *repository.GroupRepository
	EventRepo *repository.EventRepository
	Redis     *redis.Client
}

func NewGroupService(groupRepo *repository.GroupRepository, eventRepo *repository.EventRepository, rdb *redis.Client) *GroupService {
	return &GroupService{GroupRepo: groupRepo, EventRepo: eventRepo, Redis: rdb}
}

type GroupCreateRequest struct {
	EventID         uint      `json:"eventId" binding:"required"`
	Name            string    `json:"name" binding:"required"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	CloseTime       time.Time `json:"closeTime" binding:"required"`
	MaxAttempts     int       `json:"maxAttempts"`
	CooldownSeconds int64     `json:"cooldownSeconds"`
}

type GroupUpdateRequest struct {
	Name            string     `json:"name"`
	StartTime       *time.Time `json:"startTime"`
	CloseTime       *time.Time `json:"closeTime"`
	MaxAttempts     *int       `json:"maxAttempts"`
	CooldownSeconds *int64     `json:"cooldownSeconds"`
}

func validateWindow(start, close time.Time) error {
	if !close.After(start) {
		return util.Validation("close time must be after start time")
	}
	return nil
}

func (s *GroupService) CreateGroup(req *GroupCreateRequest) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.Validation("group name must not be empty")
	}
	if err := validateWindow(req.StartTime, req.CloseTime); err != nil {
		return nil, err
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	if maxAttempts < 1 {
		return nil, util.Validation("max attempts must be at least 1")
	}
	if req.CooldownSeconds < 0 {
		return nil, util.Validation("cooldown must not be negative")
	}

	if _, err := s.EventRepo.FindByID(req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}

	existing, err := s.GroupRepo.FindByEventAndName(req.EventID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrGroupNameTaken
	}

	group := &model.Group{
		EventID:         req.EventID,
		Name:            name,
		StartTime:       req.StartTime.UTC(),
		CloseTime:       req.CloseTime.UTC(),
		MaxAttempts:     maxAttempts,
		CooldownSeconds: req.CooldownSeconds,
	}
	if err := s.GroupRepo.Create(group); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrGroupNameTaken
		}
		return nil, err
	}
	s.invalidateActiveCache()
	return group, nil
}

func (s *GroupService) UpdateGroup(id uint, req *GroupUpdateRequest) (*model.Group, error) {
	group, err := s.GetGroup(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, util.Validation("group name must not be empty")
		}
		if name != group.Name {
			existing, err := s.GroupRepo.FindByEventAndName(group.EventID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, util.ErrGroupNameTaken
			}
			group.Name = name
		}
	}
	if req.StartTime != nil {
		group.StartTime = req.StartTime.UTC()
	}
	if req.CloseTime != nil {
		group.CloseTime = req.CloseTime.UTC()
	}
	if err := validateWindow(group.StartTime, group.CloseTime); err != nil {
		return nil, err
	}
	if req.MaxAttempts != nil {
		if *req.MaxAttempts < 1 {
			return nil, util.Validation("max attempts must be at least 1")
		}
		group.MaxAttempts = *req.MaxAttempts
	}
	if req.CooldownSeconds != nil {
		if *req.CooldownSeconds < 0 {
			return nil, util.Validation("cooldown must not be negative")
		}
		group.CooldownSeconds = *req.CooldownSeconds
	}

	if err := s.GroupRepo.Update(group); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrGroupNameTaken
		}
		return nil, err
	}
	s.invalidateActiveCache()
	return group, nil
}

func (s *GroupService) GetGroup(id uint) (*model.Group, error) {
	group, err := s.GroupRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) ListGroups(eventID uint) ([]model.Group, error) {
	if eventID == 0 {
		return s.GroupRepo.List()
	}
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}
	return s.GroupRepo.ListByEvent(eventID)
}

// ActiveGroups returns the groups whose window contains the given instant,
// defaulting to now. The now answer is cached briefly in Redis since the
// landing page polls it; a cache miss, an explicit instant or an absent
// Redis falls straight through to the database.
func (s *GroupService) ActiveGroups(at *time.Time, eventID uint) ([]model.Group, error) {
	if at != nil {
		return s.GroupRepo.ListActive(at.UTC(), eventID)
	}

	key := fmt.Sprintf("groups:active:%d", eventID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), key).Result()
		if err == nil {
			var groups []model.Group
			if err := json.Unmarshal([]byte(cached), &groups); err == nil {
				return groups, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("active groups cache read failed", zap.Error(err))
		}
	}

	groups, err := s.GroupRepo.ListActive(time.Now().UTC(), eventID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(groups); err == nil {
			if err := s.Redis.Set(context.Background(), key, payload, activeGroupsCacheTTL).Err(); err != nil {
				logger.Log.Warn("active groups cache write failed", zap.Error(err))
			}
		}
	}
	return groups, nil
}

func (s *GroupService) DeleteGroup(id uint) error {
	group, err := s.GetGroup(id)
	if err != nil {
		return err
	}
	if err := s.GroupRepo.Delete(group); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

func (s *GroupService) invalidateActiveCache() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, "groups:active:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("active groups cache invalidation failed", zap.Error(err))
	}
}
