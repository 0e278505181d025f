package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuscrm/backend/internal/domain/shared"
)

// OpportunityStage represents the pipeline stage of an opportunity
type OpportunityStage string

const (
	StageNew           OpportunityStage = "NEW"
	StageQualification OpportunityStage = "QUALIFICATION"
	StageProposal      OpportunityStage = "PROPOSAL"
	StageNegotiation   OpportunityStage = "NEGOTIATION"
	StageWon           OpportunityStage = "WON"
	StageLost          OpportunityStage = "LOST"
)

// IsValid checks if the stage is a valid OpportunityStage
func (s OpportunityStage) IsValid() bool {
	switch s {
	case StageNew, StageQualification, StageProposal, StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}

// String returns the string representation of OpportunityStage
func (s OpportunityStage) String() string {
	return string(s)
}

// Opportunity is a pipeline entry for a client. Its number belongs to the OPP
// series, is assigned once at creation and never changes afterwards.
type Opportunity struct {
	shared.BaseEntity
	Number       string     `gorm:"size:50;not null;uniqueIndex"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name         string     `gorm:"size:255;not null"`
	Description  string
	Stage        OpportunityStage `gorm:"size:20;not null;default:NEW"`
	InsertedDate time.Time        `gorm:"not null"`
	CloseDate    *time.Time
}

// NewOpportunity creates a new opportunity in the NEW stage. The insertion
// date defaults to the creation date. An empty number means the repository
// allocates one from the OPP series on create.
func NewOpportunity(number string, clientID uuid.UUID, name string) (*Opportunity, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client_id", "Opportunity must belong to a client")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "Opportunity name cannot be empty")
	}

	entity := shared.NewBaseEntity()
	return &Opportunity{
		BaseEntity:   entity,
		Number:       number,
		ClientID:     clientID,
		Name:         name,
		Stage:        StageNew,
		InsertedDate: entity.CreatedAt,
	}, nil
}

// SetStage moves the opportunity to another pipeline stage. Stage transitions
// are unconstrained.
func (o *Opportunity) SetStage(stage OpportunityStage) error {
	if !stage.IsValid() {
		return shared.NewValidationError("stage", "Unknown opportunity stage")
	}
	o.Stage = stage
	o.Touch()
	return nil
}

// Close records the close date of the opportunity
func (o *Opportunity) Close(at time.Time) {
	o.CloseDate = &at
	o.Touch()
}
