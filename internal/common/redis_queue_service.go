package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQueueService provides queue functionality using Redis Streams
type RedisQueueService struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client, logger *zap.Logger) *RedisQueueService {
	return &RedisQueueService{
		client: client,
		logger: logger,
	}
}

// UrgentAlertItem is an urgent sighting waiting to be broadcast
type UrgentAlertItem struct {
	SightingID string    `json:"sighting_id"`
	Species    string    `json:"species"`
	Reporter   string    `json:"reporter"`
	Notes      string    `json:"notes,omitempty"`
	Location   string    `json:"location,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`
}

// EnqueueAlert adds an alert to the stream
func (s *RedisQueueService) EnqueueAlert(ctx context.Context, streamName string, item *UrgentAlertItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	// XADD stream_name * data <json>
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// DequeueAlert reads one new alert for the consumer group.
// Returns (nil, "", nil) when nothing arrived within blockTime.
func (s *RedisQueueService) DequeueAlert(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*UrgentAlertItem, string, error) {
	// XREADGROUP GROUP group consumer BLOCK milliseconds COUNT 1 STREAMS stream >
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"},
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	item, err := decodeAlert(msg)
	if err != nil {
		// hand back the id so the caller can ack the poison message
		return nil, msg.ID, err
	}
	return item, msg.ID, nil
}

// AckAlert acknowledges successful processing of a message
func (s *RedisQueueService) AckAlert(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	// XGROUP CREATE stream group 0 MKSTREAM
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

// GetQueueLength returns the number of entries in the stream
func (s *RedisQueueService) GetQueueLength(ctx context.Context, streamName string) (int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}

// GetPendingCount returns the number of unacknowledged messages for a consumer group
func (s *RedisQueueService) GetPendingCount(ctx context.Context, streamName, groupName string) (int64, error) {
	pending, err := s.client.XPending(ctx, streamName, groupName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending count: %w", err)
	}
	return pending.Count, nil
}

// TrimStream keeps only the most recent maxLen messages
func (s *RedisQueueService) TrimStream(ctx context.Context, streamName string, maxLen int64) error {
	return s.client.XTrimMaxLen(ctx, streamName, maxLen).Err()
}

// ClaimStaleAlerts takes over messages another consumer left pending for
// at least minIdleTime.
func (s *RedisQueueService) ClaimStaleAlerts(ctx context.Context, streamName, groupName, consumerName string, minIdleTime time.Duration) ([]*UrgentAlertItem, []string, error) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: streamName,
		Group:  groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pending messages: %w", err)
	}

	var staleIDs []string
	for _, p := range pending {
		if p.Idle >= minIdleTime {
			staleIDs = append(staleIDs, p.ID)
		}
	}
	if len(staleIDs) == 0 {
		return nil, nil, nil
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   streamName,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdleTime,
		Messages: staleIDs,
	}).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	var items []*UrgentAlertItem
	var messageIDs []string
	for _, msg := range messages {
		item, err := decodeAlert(msg)
		if err != nil {
			s.logger.Warn("Skipping unreadable claimed alert", zap.String("message_id", msg.ID), zap.Error(err))
			continue
		}
		items = append(items, item)
		messageIDs = append(messageIDs, msg.ID)
	}

	return items, messageIDs, nil
}

func decodeAlert(msg redis.XMessage) (*UrgentAlertItem, error) {
	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid message format: data field missing")
	}

	var item UrgentAlertItem
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert: %w", err)
	}
	return &item, nil
}
