package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FeedbackType lưu dưới dạng SMALLINT
type FeedbackType int16

const (
	TypeProduct FeedbackType = iota
	TypeLogistics
	TypeCustomer
	TypeDiscounts
	TypeDysfunction
	TypeProductProposal
	TypeOther
)

var feedbackTypeNames = []string{
	"product", "logistics", "customer", "discounts", "dysfunction", "product_proposal", "other",
}

func (t FeedbackType) IsValid() bool {
	return t >= TypeProduct && t <= TypeOther
}

func (t FeedbackType) String() string {
	if t.IsValid() {
		return feedbackTypeNames[t]
	}
	return fmt.Sprintf("feedback_type(%d)", int16(t))
}

// UnmarshalJSON nhận cả số (0..6) lẫn tên ("logistics")
func (t *FeedbackType) UnmarshalJSON(data []byte) error {
	var n int16
	if err := json.Unmarshal(data, &n); err == nil {
		*t = FeedbackType(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("feedback type must be a number or a name")
	}
	for i, name := range feedbackTypeNames {
		if name == s {
			*t = FeedbackType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown feedback type %q", s)
}

type Feedback struct {
	ID        int64        `json:"id"`
	UserID    *uuid.UUID   `json:"user_id,omitempty"`
	Contact   *string      `json:"contact,omitempty"`
	Content   string       `json:"content"`
	Type      FeedbackType `json:"type"`
	IsDeleted bool         `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
