// internal/engine/engine.go
//
// The only path that mutates feature state. The engine owns the annotation
// bookkeeping rules: which side-fields exist for which status, and how they
// are resolved when a transition needs one that wasn't supplied. Transitions
// themselves are never rejected; any status may follow any other.

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kingrea/proflow/internal/logbook"
	"github.com/kingrea/proflow/internal/store"
	"github.com/kingrea/proflow/internal/track"
)

// Placeholders used when no reason or duration can be resolved from any
// source. Transitions always succeed; the placeholder is the last resort.
const (
	PlaceholderReason     = "no reason given"
	PlaceholderCompletion = "0"
)

// AnnotationKind identifies which side-field a resolver is asked for.
type AnnotationKind int

const (
	KindReason AnnotationKind = iota
	KindCompletion
)

// AnnotationResolver supplies a missing reason or completion duration,
// typically by prompting the user. The second return is false when the
// user declined to answer, in which case the engine falls back to the
// previously stored value and finally to a placeholder.
type AnnotationResolver interface {
	Resolve(kind AnnotationKind, team track.Team, previous string) (string, bool)
}

// ResolverFunc adapts a function to AnnotationResolver.
type ResolverFunc func(kind AnnotationKind, team track.Team, previous string) (string, bool)

// Resolve implements AnnotationResolver.
func (f ResolverFunc) Resolve(kind AnnotationKind, team track.Team, previous string) (string, bool) {
	return f(kind, team, previous)
}

// Annotations carries optional side-values for SetTeamStatus. Reason and
// Completion count as supplied only when non-empty after trimming.
// Estimate is applied only when the pointer is non-nil: an empty value
// deletes the estimate, a non-empty value sets it, nil leaves it alone.
type Annotations struct {
	Reason     string
	Completion string
	Estimate   *string
}

// AnnotationField names a single side-field for direct edits.
type AnnotationField int

const (
	FieldReason AnnotationField = iota
	FieldEstimate
	FieldCompletion
)

// ValidationError reports a creation input the user must fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Engine applies status transitions and creation rules on top of a store.
type Engine struct {
	store    *store.Store
	resolver AnnotationResolver
	log      *logbook.Logbook
}

// New builds an engine. The resolver may be nil, in which case missing
// annotations skip straight to the previous-value/placeholder fallbacks.
func New(st *store.Store, resolver AnnotationResolver, log *logbook.Logbook) *Engine {
	return &Engine{store: st, resolver: resolver, log: log}
}

// CreateFeature validates the creation form inputs and stores a new record.
// Every feature enters the pipeline at Product: that team starts WAITING and
// all others NONE until explicitly engaged.
func (e *Engine) CreateFeature(name, projectName, description, priorityLetter, priorityRank string) (track.Feature, error) {
	name = strings.TrimSpace(name)
	projectName = strings.TrimSpace(projectName)
	if name == "" {
		return track.Feature{}, &ValidationError{Field: "name", Message: "feature name is required"}
	}
	if projectName == "" {
		return track.Feature{}, &ValidationError{Field: "project", Message: "project name is required"}
	}
	letter := strings.ToUpper(strings.TrimSpace(priorityLetter))
	if letter != "A" && letter != "B" && letter != "C" {
		return track.Feature{}, &ValidationError{Field: "priority", Message: "severity must be A, B or C"}
	}
	rank, err := strconv.Atoi(strings.TrimSpace(priorityRank))
	if err != nil || rank < 1 {
		return track.Feature{}, &ValidationError{Field: "priority", Message: "rank must be a whole number of at least 1"}
	}

	draft := track.NewFeature(name, projectName, description, track.FormatPriority(letter, rank))
	draft.TeamStatuses[track.TeamProduct] = track.StatusWaiting

	created := e.store.Create(draft)
	e.log.Info("Created feature %q (%s) in project %q", created.Name, created.Priority, created.ProjectName)
	return created, nil
}

// SetTeamStatus overwrites one team's status on one feature and reconciles
// the annotation maps so the presence invariants hold afterwards. An
// unknown id is a silent no-op.
func (e *Engine) SetTeamStatus(featureID string, team track.Team, status track.Status, ann Annotations) {
	feature, ok := e.store.Get(featureID)
	if !ok {
		return
	}

	previous := feature.Status(team)
	feature.TeamStatuses[team] = status

	if status == track.StatusBlocked {
		feature.BlockageReasons[team] = e.resolveAnnotation(
			KindReason, team, ann.Reason, feature.BlockageReasons[team], PlaceholderReason)
	} else {
		delete(feature.BlockageReasons, team)
	}

	if status == track.StatusCompleted {
		feature.CompletionDays[team] = e.resolveAnnotation(
			KindCompletion, team, ann.Completion, feature.CompletionDays[team], PlaceholderCompletion)
	} else {
		delete(feature.CompletionDays, team)
	}

	// Estimates are sticky: a status change alone never clears them.
	if ann.Estimate != nil {
		if *ann.Estimate != "" {
			feature.EstimatedDays[team] = *ann.Estimate
		} else {
			delete(feature.EstimatedDays, team)
		}
	}

	e.store.ApplyUpdate(featureID, feature)
	e.log.Info("Feature %q · %s: %s → %s", feature.Name, team.Label(), previous, status)
}

// SetAnnotationOnly edits a single side-field without changing status. It
// re-runs the same reconciliation as a transition to the current status, so
// a reason edit on a team that is not BLOCKED has no visible effect, while
// estimate edits always land.
func (e *Engine) SetAnnotationOnly(featureID string, team track.Team, field AnnotationField, value string) {
	feature, ok := e.store.Get(featureID)
	if !ok {
		return
	}
	current := feature.Status(team)

	var ann Annotations
	switch field {
	case FieldReason:
		ann.Reason = value
	case FieldCompletion:
		ann.Completion = value
	case FieldEstimate:
		ann.Estimate = &value
	}
	e.SetTeamStatus(featureID, team, current, ann)
}

// resolveAnnotation runs the fallback chain for a required side-value:
// explicit input, then the resolver (usually an interactive prompt seeded
// with the previous value), then the previous value, then the placeholder.
func (e *Engine) resolveAnnotation(kind AnnotationKind, team track.Team, explicit, previous, placeholder string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if e.resolver != nil {
		if answer, answered := e.resolver.Resolve(kind, team, previous); answered {
			if v := strings.TrimSpace(answer); v != "" {
				return v
			}
			return placeholder
		}
	}
	if previous != "" {
		return previous
	}
	return placeholder
}
