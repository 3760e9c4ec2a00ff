// Package entities maps the assistant tables to GORM models.
package entities

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/auditlog"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
)

// TableName specifies the table name for Deal.
func (Deal) TableName() string {
	return "deals"
}

// Deal represents the persisted deal record.
type Deal struct {
	ID            int64          `gorm:"primaryKey"`
	OwnerUserID   string         `gorm:"size:64;not null;index:idx_deals_owner_updated"`
	CustomerToken string         `gorm:"size:64;not null"`
	Status        string         `gorm:"size:32;not null;default:new"`
	Notes         *string        `gorm:"type:text"`
	Preference    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewDeal converts a domain deal into an entity.
func NewDeal(d *deal.Deal) *Deal {
	return &Deal{
		ID:            d.ID,
		OwnerUserID:   d.OwnerUserID,
		CustomerToken: d.CustomerToken,
		Status:        string(d.Status),
		Notes:         d.Notes,
		Preference:    toJSON(d.Preference),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// EtoD converts the entity back to the domain representation.
func (e *Deal) EtoD() *deal.Deal {
	return &deal.Deal{
		ID:            e.ID,
		OwnerUserID:   e.OwnerUserID,
		CustomerToken: e.CustomerToken,
		Status:        deal.Status(e.Status),
		Notes:         e.Notes,
		Preference:    fromJSON(e.Preference),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// TableName specifies the table name for Artifact.
func (Artifact) TableName() string {
	return "artifacts"
}

// Artifact represents the persisted artifact record.
type Artifact struct {
	ID          int64          `gorm:"primaryKey"`
	DealID      int64          `gorm:"not null;index:idx_artifacts_deal_created"`
	OwnerUserID string         `gorm:"size:64;not null"`
	Type        string         `gorm:"size:32;not null"`
	Title       string         `gorm:"size:200;not null"`
	Content     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

func NewArtifact(a *artifact.Artifact) *Artifact {
	return &Artifact{
		ID:          a.ID,
		DealID:      a.DealID,
		OwnerUserID: a.OwnerUserID,
		Type:        string(a.Type),
		Title:       a.Title,
		Content:     toJSON(a.Content),
		CreatedAt:   a.CreatedAt,
	}
}

func (e *Artifact) EtoD() *artifact.Artifact {
	return &artifact.Artifact{
		ID:          e.ID,
		DealID:      e.DealID,
		OwnerUserID: e.OwnerUserID,
		Type:        artifact.Type(e.Type),
		Title:       e.Title,
		Content:     fromJSON(e.Content),
		CreatedAt:   e.CreatedAt,
	}
}

// TableName specifies the table name for AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLog represents one persisted audit row.
type AuditLog struct {
	ID          int64          `gorm:"primaryKey"`
	ActorUserID string         `gorm:"size:64;not null"`
	Action      string         `gorm:"size:64;not null"`
	Resource    string         `gorm:"size:64;not null"`
	Request     datatypes.JSON `gorm:"type:jsonb"`
	Response    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

func NewAuditLog(e *auditlog.Entry) *AuditLog {
	return &AuditLog{
		ID:          e.ID,
		ActorUserID: e.ActorUserID,
		Action:      e.Action,
		Resource:    e.Resource,
		Request:     toJSON(e.Request),
		Response:    toJSON(e.Response),
		CreatedAt:   e.CreatedAt,
	}
}

// TableName specifies the table name for QuickQuestion.
func (QuickQuestion) TableName() string {
	return "quick_questions"
}

// QuickQuestion represents a saved prompt shortcut.
type QuickQuestion struct {
	ID          int64  `gorm:"primaryKey"`
	OwnerUserID string `gorm:"size:64;not null"`
	Text        string `gorm:"size:240;not null"`
	CreatedAt   time.Time
}

func NewQuickQuestion(q *quickquestion.QuickQuestion) *QuickQuestion {
	return &QuickQuestion{
		ID:          q.ID,
		OwnerUserID: q.OwnerUserID,
		Text:        q.Text,
		CreatedAt:   q.CreatedAt,
	}
}

func (e *QuickQuestion) EtoD() *quickquestion.QuickQuestion {
	return &quickquestion.QuickQuestion{
		ID:          e.ID,
		OwnerUserID: e.OwnerUserID,
		Text:        e.Text,
		CreatedAt:   e.CreatedAt,
	}
}

// toJSON stores null values as an empty object to satisfy the NOT NULL
// jsonb columns.
func toJSON(v toolvalue.Value) datatypes.JSON {
	if v.IsNull() {
		return datatypes.JSON("{}")
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

func fromJSON(raw datatypes.JSON) toolvalue.Value {
	if len(raw) == 0 {
		return toolvalue.Object(nil)
	}
	v, err := toolvalue.Parse([]byte(raw))
	if err != nil {
		return toolvalue.Object(nil)
	}
	return v
}
