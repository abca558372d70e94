package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/studydeck-backend/internal/logger"
)

// SignalService stores short-lived WebRTC signaling state in redis. A session
// pairs a desktop with a phone that scanned its QR code. Entries carry a fixed
// TTL and no merge logic: last write wins.
type SignalService interface {
	CreateSession(ctx context.Context) (string, error)
	SetOffer(ctx context.Context, sessionID, sdp string) error
	GetOffer(ctx context.Context, sessionID string) (string, error)
	SetAnswer(ctx context.Context, sessionID, sdp string) error
	GetAnswer(ctx context.Context, sessionID string) (string, error)
	AddCandidate(ctx context.Context, sessionID, role, candidate string) error
	Candidates(ctx context.Context, sessionID, role string) ([]string, error)
}

type signalService struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSignalService(baseLog *logger.Logger, addr string, ttl time.Duration) (SignalService, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &signalService{
		log: baseLog.With("service", "SignalService"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func key(sessionID, field string) string {
	return "signal:sess:" + sessionID + ":" + field
}

func validRole(role string) bool {
	return role == "host" || role == "viewer"
}

func (s *signalService) CreateSession(ctx context.Context) (string, error) {
	sessionID := uuid.New().String()
	if err := s.rdb.Set(ctx, key(sessionID, "created"), time.Now().Format(time.RFC3339), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}

func (s *signalService) set(ctx context.Context, sessionID, field, value string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if err := s.rdb.Set(ctx, key(sessionID, field), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", field, err)
	}
	return nil
}

func (s *signalService) get(ctx context.Context, sessionID, field string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	value, err := s.rdb.Get(ctx, key(sessionID, field)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", field, err)
	}
	return value, nil
}

func (s *signalService) SetOffer(ctx context.Context, sessionID, sdp string) error {
	return s.set(ctx, sessionID, "offer", sdp)
}

func (s *signalService) GetOffer(ctx context.Context, sessionID string) (string, error) {
	return s.get(ctx, sessionID, "offer")
}

func (s *signalService) SetAnswer(ctx context.Context, sessionID, sdp string) error {
	return s.set(ctx, sessionID, "answer", sdp)
}

func (s *signalService) GetAnswer(ctx context.Context, sessionID string) (string, error) {
	return s.get(ctx, sessionID, "answer")
}

func (s *signalService) AddCandidate(ctx context.Context, sessionID, role, candidate string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if !validRole(role) {
		return fmt.Errorf("invalid role %q", role)
	}
	if candidate == "" {
		return fmt.Errorf("candidate is required")
	}
	listKey := key(sessionID, "candidates:"+role)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, listKey, candidate)
	pipe.Expire(ctx, listKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store candidate: %w", err)
	}
	return nil
}

func (s *signalService) Candidates(ctx context.Context, sessionID, role string) ([]string, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if !validRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	values, err := s.rdb.LRange(ctx, key(sessionID, "candidates:"+role), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return values, nil
}
