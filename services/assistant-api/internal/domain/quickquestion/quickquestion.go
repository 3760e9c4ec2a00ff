package quickquestion

import (
	"context"
	"time"
)

// MaxTextLength bounds a quick question in characters.
const MaxTextLength = 240

// ListLimit caps the questions returned per user.
const ListLimit = 100

// Defaults are offered to users who have no quick questions yet.
var Defaults = []string{
	"무사고 SUV 2000만원 이하 추천해줘",
	"12가3456 리스크 고지 멘트 만들어줘",
	"쏘렌토 시세 요약해줘",
	"비교표 만들어줘",
	"팔로업 카톡 문구",
}

// QuickQuestion is a saved prompt shortcut.
type QuickQuestion struct {
	ID          int64
	OwnerUserID string
	Text        string
	CreatedAt   time.Time
}

// Repository persists quick questions. DeleteOwned reports false when the
// question is missing or belongs to another user.
type Repository interface {
	ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*QuickQuestion, error)
	CreateMany(ctx context.Context, questions []*QuickQuestion) error
	DeleteOwned(ctx context.Context, id int64, ownerUserID string) (bool, error)
}
