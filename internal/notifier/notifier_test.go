package notifier

import (
	"context"
	"strings"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_WritesLogfmt(t *testing.T) {
	var buf strings.Builder
	n := NewLogNotifier(kitlog.NewLogfmtLogger(&buf))
	ctx := context.Background()

	err := n.SendApprovalNotice(ctx, "owner@example.com", "Asha", "Toyota Corolla 2019", "ad-1")
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "approval notice sent")
	assert.Contains(t, buf.String(), "owner@example.com")
	assert.Contains(t, buf.String(), "/ad-detail/ad-1")

	buf.Reset()
	err = n.SendSubmittedNotice(ctx, "owner@example.com", "Asha", "Toyota Corolla 2019")
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "submission notice sent")

	buf.Reset()
	err = n.SendRejectionNotice(ctx, "owner@example.com", "Asha", "Toyota Corolla 2019", "photos missing")
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "rejection notice sent")
	assert.Contains(t, buf.String(), "photos missing")
}
