package tasks

import "time"

// Task Types
const (
	TaskTypeVoucherEmail       = "email:voucher"
	TaskTypePasswordResetEmail = "email:password_reset"
	TaskTypePublishDuePosts    = "posts:publish_due"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like email sending
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

type VoucherEmailPayload struct {
	VoucherID string `json:"voucherId"`
	ContactID string `json:"contactId"`
}

type PasswordResetEmailPayload struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}
