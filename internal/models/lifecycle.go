package models

import (
	"fmt"
)

// Action is the lifecycle action requested against an ad
type Action string

// enum values for Action
const (
	ActionSaveDraft       Action = "save-draft"
	ActionSubmitForReview Action = "submit-for-review"
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
)

// ParseAction validates an action tag coming off the wire.
func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionSaveDraft, ActionSubmitForReview, ActionApprove, ActionReject:
		return Action(value), nil
	default:
		return "", fmt.Errorf("%w: unknown lifecycle action %q", ErrInvalidArgument, value)
	}
}

// TransitionPayload carries optional data for a lifecycle action.
type TransitionPayload struct {
	// RejectionDescription is recorded on reject. Optional.
	RejectionDescription string
}

// Notice identifies the notification the caller must dispatch (best-effort)
// after persisting a successful transition.
type Notice string

// enum values for Notice
const (
	NoticeNone      Notice = ""
	NoticeSubmitted Notice = "submitted"
	NoticeApproval  Notice = "approval"
	NoticeRejection Notice = "rejection"
)

// TransitionResult is the outcome of a legal lifecycle transition: the new
// status with its derived flags, plus the notice kind the caller should
// dispatch. Transition itself performs no side effects, so the state change
// always persists even if notification dispatch later fails.
type TransitionResult struct {
	Status               AdStatus
	Published            bool
	IsDraft              bool
	RejectionDescription *string
	Notice               Notice
}

// DerivedFlags computes the published/is-draft projections for a status.
// Keeping this in one place is what prevents the stored booleans from
// falling out of sync with the status enum.
func DerivedFlags(status AdStatus, previousPublished bool) (published, isDraft bool) {
	switch status {
	case StatusDraft:
		// Saving a draft does not force published off; only the draft flag toggles.
		return previousPublished, true
	case StatusPendingReview:
		return true, false
	case StatusActive:
		return true, false
	case StatusRejected:
		return false, false
	case StatusExpired:
		return false, false
	default:
		return false, true
	}
}

// Transition enforces the lifecycle state machine. It is a pure function:
// given the current ad snapshot, an action, the acting identity and an
// optional payload, it returns the new status and derived flags or a domain
// error. Permission is checked before transition legality, so a non-admin
// approve always fails with ErrPermissionDenied regardless of ad status.
func Transition(ad *Ad, action Action, actor Actor, payload TransitionPayload) (TransitionResult, error) {
	switch action {
	case ActionSaveDraft, ActionSubmitForReview:
		if !actor.Owns(ad) {
			return TransitionResult{}, fmt.Errorf("%w: action %s requires the ad owner", ErrPermissionDenied, action)
		}
	case ActionApprove, ActionReject:
		if !actor.IsAdmin() {
			return TransitionResult{}, fmt.Errorf("%w: action %s requires the admin role", ErrPermissionDenied, action)
		}
	default:
		return TransitionResult{}, fmt.Errorf("%w: unknown lifecycle action %q", ErrInvalidArgument, action)
	}

	switch action {
	case ActionSaveDraft:
		// Owners may pull any non-terminal ad back to draft.
		if ad.Status == StatusExpired {
			return TransitionResult{}, illegalFrom(ad.Status, action)
		}
		published, isDraft := DerivedFlags(StatusDraft, ad.Published)
		return TransitionResult{
			Status:               StatusDraft,
			Published:            published,
			IsDraft:              isDraft,
			RejectionDescription: ad.RejectionDescription,
		}, nil

	case ActionSubmitForReview:
		if ad.Status != StatusDraft && ad.Status != StatusRejected {
			return TransitionResult{}, illegalFrom(ad.Status, action)
		}
		published, isDraft := DerivedFlags(StatusPendingReview, ad.Published)
		result := TransitionResult{
			Status:    StatusPendingReview,
			Published: published,
			IsDraft:   isDraft,
		}
		// Only a first-time submission announces itself; a resubmission
		// after rejection stays quiet.
		if ad.Status == StatusDraft {
			result.Notice = NoticeSubmitted
		}
		return result, nil

	case ActionApprove:
		if ad.Status != StatusDraft && ad.Status != StatusPendingReview && ad.Status != StatusRejected {
			return TransitionResult{}, illegalFrom(ad.Status, action)
		}
		published, isDraft := DerivedFlags(StatusActive, ad.Published)
		return TransitionResult{
			Status:    StatusActive,
			Published: published,
			IsDraft:   isDraft,
			Notice:    NoticeApproval,
		}, nil

	case ActionReject:
		if ad.Status != StatusDraft && ad.Status != StatusPendingReview && ad.Status != StatusActive {
			return TransitionResult{}, illegalFrom(ad.Status, action)
		}
		published, isDraft := DerivedFlags(StatusRejected, ad.Published)
		result := TransitionResult{
			Status:    StatusRejected,
			Published: published,
			IsDraft:   isDraft,
			Notice:    NoticeRejection,
		}
		if desc := payload.RejectionDescription; desc != "" {
			result.RejectionDescription = &desc
		}
		return result, nil
	}

	return TransitionResult{}, fmt.Errorf("%w: unknown lifecycle action %q", ErrInvalidArgument, action)
}

func illegalFrom(status AdStatus, action Action) error {
	return fmt.Errorf("%w: cannot %s from status %s", ErrInvalidTransition, action, status)
}

// StatusUpdate is the single atomic write applied by the persistence layer
// after a successful transition.
type StatusUpdate struct {
	Status               AdStatus
	Published            bool
	IsDraft              bool
	RejectionDescription *string
}

// ToStatusUpdate converts a transition result into the persistence write.
func (r TransitionResult) ToStatusUpdate() StatusUpdate {
	return StatusUpdate{
		Status:               r.Status,
		Published:            r.Published,
		IsDraft:              r.IsDraft,
		RejectionDescription: r.RejectionDescription,
	}
}
