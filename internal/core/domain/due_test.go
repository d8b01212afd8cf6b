package domain_test

import (
	"testing"
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDue_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  domain.Due
		want domain.DueStatus
	}{
		{
			name: "pending before due date stays pending",
			due:  domain.Due{Status: domain.StatusPending, DueDate: now.AddDate(0, 0, 5)},
			want: domain.StatusPending,
		},
		{
			name: "pending past due date reads as overdue",
			due:  domain.Due{Status: domain.StatusPending, DueDate: now.AddDate(0, 0, -1)},
			want: domain.StatusOverdue,
		},
		{
			name: "in review is not overridden by elapsed due date",
			due:  domain.Due{Status: domain.StatusInReview, DueDate: now.AddDate(0, -1, 0)},
			want: domain.StatusInReview,
		},
		{
			name: "paid is terminal regardless of due date",
			due:  domain.Due{Status: domain.StatusPaid, DueDate: now.AddDate(0, -1, 0)},
			want: domain.StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.due.EffectiveStatus(now))
		})
	}
}

func TestDue_IsPayable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	payable := domain.Due{Status: domain.StatusPending, DueDate: now.AddDate(0, 0, -3)}
	assert.True(t, payable.IsPayable(now), "overdue dues accept declared payments")

	inReview := domain.Due{Status: domain.StatusInReview, DueDate: now}
	assert.False(t, inReview.IsPayable(now))

	paid := domain.Due{Status: domain.StatusPaid, DueDate: now}
	assert.False(t, paid.IsPayable(now))
}

func TestDue_HasPaymentHistory(t *testing.T) {
	clean := domain.Due{Status: domain.StatusPending}
	assert.False(t, clean.HasPaymentHistory())

	declared := decimal.NewFromInt(14000)
	rejected := domain.Due{Status: domain.StatusPending}
	rejected.DeclaredLocalAmount = &declared
	assert.True(t, rejected.HasPaymentHistory(), "declared metadata counts as history even after rejection")

	inReview := domain.Due{Status: domain.StatusInReview}
	assert.True(t, inReview.HasPaymentHistory())
}
