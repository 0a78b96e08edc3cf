package tasks

import (
	"encoding/json"
	"fmt"
	"sync"

	"brandbase/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing
type TaskClient struct {
	client      *asynq.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	})

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

func (c *TaskClient) Redis() *redis.Client {
	return c.redisClient
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}

var (
	defaultClient *TaskClient
	defaultMu     sync.RWMutex
)

// SetDefaultClient installs the process-wide task client used by the
// package-level enqueue helpers.
func SetDefaultClient(c *TaskClient) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

func getDefaultClient() *TaskClient {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

func enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	c := getDefaultClient()
	if c == nil {
		return fmt.Errorf("task client not configured")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	info, err := c.client.Enqueue(asynq.NewTask(taskType, data), opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", taskType, info.ID, info.Queue)
	return nil
}

// EnqueueVoucherEmail queues a voucher email for one contact.
func EnqueueVoucherEmail(voucherID, contactID string) error {
	return enqueue(TaskTypeVoucherEmail,
		VoucherEmailPayload{VoucherID: voucherID, ContactID: contactID},
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
}

// EnqueuePasswordResetEmail queues a reset-code email.
func EnqueuePasswordResetEmail(userID, code string) error {
	return enqueue(TaskTypePasswordResetEmail,
		PasswordResetEmailPayload{UserID: userID, Code: code},
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
}
