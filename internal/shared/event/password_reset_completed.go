package event

import "time"

const PasswordResetCompletedDestination string = "password_reset.completed"
const PasswordResetCompletedConsumerNotification string = "password_reset_completed_notification"

type PasswordResetCompletedMessage struct {
	TokenID     string    `json:"token_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CompletedAt time.Time `json:"completed_at"`
}
