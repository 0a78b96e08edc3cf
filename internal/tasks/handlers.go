package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brandbase/internal/config"
	"brandbase/internal/events"
	"brandbase/internal/models"
	"brandbase/internal/tasks/rate"
	"brandbase/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// TaskHandler processes queued work: outbound email and the scheduled-post
// sweep.
type TaskHandler struct {
	db          *gorm.DB
	cfg         *config.Config
	logger      *logger.Logger
	emailLimits *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler. The rate limiter is optional;
// without one email sends are unthrottled.
func NewTaskHandler(db *gorm.DB, cfg *config.Config, emailLimits *rate.QueueRateLimiter) *TaskHandler {
	return &TaskHandler{
		db:          db,
		cfg:         cfg,
		logger:      logger.New("task_handler"),
		emailLimits: emailLimits,
	}
}

func (h *TaskHandler) sendMail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", h.cfg.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(h.cfg.SMTP.Host, h.cfg.SMTP.Port, h.cfg.SMTP.Username, h.cfg.SMTP.Password)
	return d.DialAndSend(m)
}

func (h *TaskHandler) allowEmail(ctx context.Context, userID string) error {
	if h.emailLimits == nil {
		return nil
	}
	ok, err := h.emailLimits.Allow(ctx, userID)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	if !ok {
		// Retried later by asynq with backoff.
		return fmt.Errorf("email rate limit exceeded for user %s", userID)
	}
	return nil
}

// HandleVoucherEmail sends one voucher to one contact.
func (h *TaskHandler) HandleVoucherEmail(ctx context.Context, t *asynq.Task) error {
	var payload VoucherEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid voucher email payload: %w", err)
	}

	var voucher models.Voucher
	if err := h.db.WithContext(ctx).Where("id = ?", payload.VoucherID).First(&voucher).Error; err != nil {
		return fmt.Errorf("voucher %s: %w", payload.VoucherID, err)
	}
	if !voucher.IsActive {
		h.logger.Warn("Skipping send for deactivated voucher %s", voucher.Code)
		return nil
	}

	var contact models.Contact
	if err := h.db.WithContext(ctx).Where("id = ?", payload.ContactID).First(&contact).Error; err != nil {
		return fmt.Errorf("contact %s: %w", payload.ContactID, err)
	}

	if err := h.allowEmail(ctx, voucher.UserID); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Here is your voucher code: <strong>%s</strong></p><p>%s</p>",
		contact.Name, voucher.Code, voucher.Description,
	)
	if voucher.ExpiresAt != nil {
		body += fmt.Sprintf("<p>Valid until %s.</p>", voucher.ExpiresAt.Format("January 2, 2006"))
	}

	if err := h.sendMail(contact.Email, "A voucher for you", body); err != nil {
		return fmt.Errorf("send voucher email: %w", err)
	}

	h.logger.Success("Voucher %s sent to %s", voucher.Code, contact.Email)
	return nil
}

// HandlePasswordResetEmail delivers a reset code.
func (h *TaskHandler) HandlePasswordResetEmail(ctx context.Context, t *asynq.Task) error {
	var payload PasswordResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid password reset payload: %w", err)
	}

	var user models.User
	if err := h.db.WithContext(ctx).Where("id = ?", payload.UserID).First(&user).Error; err != nil {
		return fmt.Errorf("user %s: %w", payload.UserID, err)
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your password reset code is <strong>%s</strong>. It expires in 15 minutes.</p>",
		user.Name, payload.Code,
	)

	if err := h.sendMail(user.Email, "Password reset code", body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	h.logger.Success("Reset code sent to %s", user.Email)
	return nil
}

// HandlePublishDuePosts flips every scheduled post whose time has passed to
// published. Runs every minute from the scheduler.
func (h *TaskHandler) HandlePublishDuePosts(ctx context.Context, t *asynq.Task) error {
	now := time.Now()

	var due []models.Post
	if err := h.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", models.PostStatusScheduled, now).
		Find(&due).Error; err != nil {
		return fmt.Errorf("query due posts: %w", err)
	}

	for i := range due {
		post := &due[i]
		result := h.db.WithContext(ctx).Model(&models.Post{}).
			Where("id = ? AND status = ?", post.ID, models.PostStatusScheduled).
			Updates(map[string]interface{}{
				"status":       models.PostStatusPublished,
				"published_at": now,
			})
		if result.Error != nil {
			h.logger.Error("Failed to publish post", result.Error)
			continue
		}
		if result.RowsAffected == 0 {
			continue // raced with an edit, leave it alone
		}

		post.Status = models.PostStatusPublished
		post.PublishedAt = &now
		events.Emit("post.published", post)
	}

	if len(due) > 0 {
		h.logger.Info("published %d due posts", len(due))
	}
	return nil
}
