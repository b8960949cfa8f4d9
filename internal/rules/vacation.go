// Package rules holds the business rules run against workflow documents.
//
// Rules are pure: they read a snapshot and append to a validation.Builder.
// Every applicable rule runs; none stops evaluation of the others.
package rules

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"docflow/internal/platform/metrics"
	"docflow/pkg/validation"
)

// Error codes emitted by the vacation request rules.
const (
	CodeCountryRequired       = "country_required"
	CodeRegularLeaveDeadline  = "regular_leave_deadline"
	CodeSupportingDocRequired = "supporting_document_required"
	CodeLeaveBasisDocRequired = "leave_basis_document_required"
	CodeCommentRequired       = "comment_required"
)

// deadlineThreshold is the minimum lead time, in days, between the request's
// creation and the Monday of the week the leave starts in.
const deadlineThreshold = 6

// VacationSnapshot is the read-only view of a vacation request the rules need.
type VacationSnapshot struct {
	CategoryID   *uuid.UUID
	FirstDate    *time.Time
	CreationDate *time.Time
	Roaming      bool
	Country      string
	Comment      string

	// AttachedFiles counts the in-memory attachment list.
	AttachedFiles int
	// StoredFiles is the authoritative attachment count from the backing store.
	StoredFiles int
}

func (s VacationSnapshot) isCategory(id uuid.UUID) bool {
	return s.CategoryID != nil && *s.CategoryID == id
}

// Actor is the role check result for the user storing the document.
type Actor struct {
	IsHR    bool
	IsAdmin bool
}

// Elevated reports whether the actor is exempt from deadline and attachment
// rules. Only HR members are; administrators get no exemption.
func (a Actor) Elevated() bool {
	return a.IsHR
}

// Evaluator runs vacation request rules.
type Evaluator struct {
	metrics *metrics.Metrics
}

type Option func(*Evaluator)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs every vacation rule and appends violations to result.
func (e *Evaluator) Validate(s VacationSnapshot, actor Actor, result *validation.Builder) {
	sink := &countingBuilder{Builder: result, metrics: e.metrics}
	CheckRoamingCountry(s, sink)
	CheckRegularLeaveDeadline(s, actor, sink)
	CheckAttachments(s, actor, sink)
}

// errorSink is the append-only surface rules write to.
type errorSink interface {
	AddError(code, message string)
}

type countingBuilder struct {
	*validation.Builder
	metrics *metrics.Metrics
}

func (c *countingBuilder) AddError(code, message string) {
	c.Builder.AddError(code, message)
	c.metrics.IncrementValidationError(code)
}

// CheckRoamingCountry requires a country whenever roaming is requested.
func CheckRoamingCountry(s VacationSnapshot, result errorSink) {
	if s.Roaming && strings.TrimSpace(s.Country) == "" {
		result.AddError(CodeCountryRequired, "Поле «Страна» обязательно для заполнения при подключении роуминга.")
	}
}

// CheckRegularLeaveDeadline requires a regular leave request to be filed more
// than six days before the Monday of the week the leave starts in.
// Missing dates skip the rule.
func CheckRegularLeaveDeadline(s VacationSnapshot, actor Actor, result errorSink) {
	if !s.isCategory(RegularLeaveID) || s.FirstDate == nil || s.CreationDate == nil {
		return
	}
	gap := WeekStart(*s.FirstDate).Sub(*s.CreationDate).Hours() / 24
	if gap <= deadlineThreshold && !actor.Elevated() {
		result.AddError(CodeRegularLeaveDeadline, "Заявка должна быть подана не позднее понедельника недели, предшествующей отпуску.")
	}
}

// CheckAttachments requires a supporting file for study and other leave, and a
// written reason for other leave.
func CheckAttachments(s VacationSnapshot, actor Actor, result errorSink) {
	study, other := s.isCategory(StudyLeaveID), s.isCategory(OtherLeaveID)
	if !study && !other {
		return
	}

	if s.AttachedFiles == 0 && s.StoredFiles == 0 && !actor.Elevated() {
		if study {
			result.AddError(CodeSupportingDocRequired, "К документу должна быть приложена копия подтверждающего документа.")
		} else {
			result.AddError(CodeLeaveBasisDocRequired, "К документу должна быть приложена копия документа - основание для отпуска.")
		}
	}

	if other && strings.TrimSpace(s.Comment) == "" {
		result.AddError(CodeCommentRequired, "В поле «Комментарий» укажите причину оформления отпуска.")
	}
}

// WeekStart returns the Monday of the week containing t, keeping t's clock.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
