// Package notifier delivers lifecycle emails to ad owners. Delivery is
// best effort: callers log failures and carry on, a lost email never
// blocks a moderation decision.
package notifier

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
)

// LogNotifier writes notifications to the structured log instead of an
// outbound mail gateway. It is the default in dev and test environments.
type LogNotifier struct {
	logger log.Logger
}

// NewLogNotifier creates a notifier that records deliveries in the log
func NewLogNotifier(logger log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendApprovalNotice tells the owner their ad went live
func (n *LogNotifier) SendApprovalNotice(ctx context.Context, email, name, adTitle, adID string) error {
	return n.logger.Log(
		"msg", "approval notice sent",
		"to", email,
		"recipient", name,
		"ad_title", adTitle,
		"ad_url", fmt.Sprintf("/ad-detail/%s", adID),
	)
}

// SendSubmittedNotice confirms the ad entered the review queue
func (n *LogNotifier) SendSubmittedNotice(ctx context.Context, email, name, adTitle string) error {
	return n.logger.Log(
		"msg", "submission notice sent",
		"to", email,
		"recipient", name,
		"ad_title", adTitle,
	)
}

// SendRejectionNotice tells the owner why their ad was turned down
func (n *LogNotifier) SendRejectionNotice(ctx context.Context, email, name, adTitle, reason string) error {
	return n.logger.Log(
		"msg", "rejection notice sent",
		"to", email,
		"recipient", name,
		"ad_title", adTitle,
		"reason", reason,
	)
}
