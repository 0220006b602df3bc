package ordering

import (
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
)

// ProductionStage represents a step of the garment manufacturing pipeline
type ProductionStage string

const (
	StageConfirmed          ProductionStage = "confirmed"
	StageAccessoriesInhouse ProductionStage = "accessories_inhouse"
	StageFabricETD          ProductionStage = "fabric_etd"
	StageFabricETA          ProductionStage = "fabric_eta"
	StageFabricInhouse      ProductionStage = "fabric_inhouse"
	StagePPSample           ProductionStage = "pp_sample"
	StageFabricTest         ProductionStage = "fabric_test"
	StageShippingSample     ProductionStage = "shipping_sample"
	StageSewingStart        ProductionStage = "sewing_start"
	StageSewingComplete     ProductionStage = "sewing_complete"
	StageInspectionStart    ProductionStage = "inspection_start"
	StageInspectionEnd      ProductionStage = "inspection_end"
	StageExFactory          ProductionStage = "ex_factory"
	StagePortHandover       ProductionStage = "port_handover"
)

// stageOrder is the fixed enumeration order of the pipeline. Milestone
// scans always walk this order, regardless of the order stages were
// actually reached in.
var stageOrder = []ProductionStage{
	StageConfirmed,
	StageAccessoriesInhouse,
	StageFabricETD,
	StageFabricETA,
	StageFabricInhouse,
	StagePPSample,
	StageFabricTest,
	StageShippingSample,
	StageSewingStart,
	StageSewingComplete,
	StageInspectionStart,
	StageInspectionEnd,
	StageExFactory,
	StagePortHandover,
}

// AllProductionStages returns the pipeline stages in enumeration order
func AllProductionStages() []ProductionStage {
	stages := make([]ProductionStage, len(stageOrder))
	copy(stages, stageOrder)
	return stages
}

// IsValid checks if the stage is part of the pipeline
func (s ProductionStage) IsValid() bool {
	for _, stage := range stageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

// String returns the string representation of ProductionStage
func (s ProductionStage) String() string {
	return string(s)
}

// Milestones holds the optional timestamp for each pipeline stage.
// A timestamp records when the stage was (or is planned to be) reached
// and is retained even after the order moves past the stage.
type Milestones struct {
	ConfirmedAt          *time.Time `json:"confirmed_at,omitempty"`
	AccessoriesInhouseAt *time.Time `json:"accessories_inhouse_at,omitempty"`
	FabricETDAt          *time.Time `json:"fabric_etd_at,omitempty"`
	FabricETAAt          *time.Time `json:"fabric_eta_at,omitempty"`
	FabricInhouseAt      *time.Time `json:"fabric_inhouse_at,omitempty"`
	PPSampleAt           *time.Time `json:"pp_sample_at,omitempty"`
	FabricTestAt         *time.Time `json:"fabric_test_at,omitempty"`
	ShippingSampleAt     *time.Time `json:"shipping_sample_at,omitempty"`
	SewingStartAt        *time.Time `json:"sewing_start_at,omitempty"`
	SewingCompleteAt     *time.Time `json:"sewing_complete_at,omitempty"`
	InspectionStartAt    *time.Time `json:"inspection_start_at,omitempty"`
	InspectionEndAt      *time.Time `json:"inspection_end_at,omitempty"`
	ExFactoryAt          *time.Time `json:"ex_factory_at,omitempty"`
	PortHandoverAt       *time.Time `json:"port_handover_at,omitempty"`
}

// Get returns the timestamp for the given stage, or nil when unset
func (m *Milestones) Get(stage ProductionStage) *time.Time {
	switch stage {
	case StageConfirmed:
		return m.ConfirmedAt
	case StageAccessoriesInhouse:
		return m.AccessoriesInhouseAt
	case StageFabricETD:
		return m.FabricETDAt
	case StageFabricETA:
		return m.FabricETAAt
	case StageFabricInhouse:
		return m.FabricInhouseAt
	case StagePPSample:
		return m.PPSampleAt
	case StageFabricTest:
		return m.FabricTestAt
	case StageShippingSample:
		return m.ShippingSampleAt
	case StageSewingStart:
		return m.SewingStartAt
	case StageSewingComplete:
		return m.SewingCompleteAt
	case StageInspectionStart:
		return m.InspectionStartAt
	case StageInspectionEnd:
		return m.InspectionEndAt
	case StageExFactory:
		return m.ExFactoryAt
	case StagePortHandover:
		return m.PortHandoverAt
	}
	return nil
}

// Set records the timestamp for the given stage. First write wins: an
// already-set milestone is never overwritten, so the date a stage was
// first reached survives rework and backward moves.
func (m *Milestones) Set(stage ProductionStage, ts time.Time) error {
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Unknown production stage")
	}
	if m.Get(stage) != nil {
		return nil
	}
	switch stage {
	case StageConfirmed:
		m.ConfirmedAt = &ts
	case StageAccessoriesInhouse:
		m.AccessoriesInhouseAt = &ts
	case StageFabricETD:
		m.FabricETDAt = &ts
	case StageFabricETA:
		m.FabricETAAt = &ts
	case StageFabricInhouse:
		m.FabricInhouseAt = &ts
	case StagePPSample:
		m.PPSampleAt = &ts
	case StageFabricTest:
		m.FabricTestAt = &ts
	case StageShippingSample:
		m.ShippingSampleAt = &ts
	case StageSewingStart:
		m.SewingStartAt = &ts
	case StageSewingComplete:
		m.SewingCompleteAt = &ts
	case StageInspectionStart:
		m.InspectionStartAt = &ts
	case StageInspectionEnd:
		m.InspectionEndAt = &ts
	case StageExFactory:
		m.ExFactoryAt = &ts
	case StagePortHandover:
		m.PortHandoverAt = &ts
	}
	return nil
}

// Milestone pairs a stage with its recorded timestamp
type Milestone struct {
	Stage ProductionStage `json:"stage"`
	Date  time.Time       `json:"date"`
}

// NextMilestone scans the fixed enumeration order and returns the first
// stage whose timestamp is set and strictly after now. Returns nil when
// no future milestone exists.
func (m *Milestones) NextMilestone(now time.Time) *Milestone {
	for _, stage := range stageOrder {
		if ts := m.Get(stage); ts != nil && ts.After(now) {
			return &Milestone{Stage: stage, Date: *ts}
		}
	}
	return nil
}
