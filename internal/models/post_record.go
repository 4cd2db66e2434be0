package models

import (
	"fmt"
	"time"
)

// PostRecord is the locally persisted record of one submission, kept so the
// history command works without the backend. Implements [Model].
type PostRecord struct {
	id           string
	sequence     int
	title        string
	category     string
	platforms    []string
	description  string
	hashtags     []string
	status       string
	viralScore   int
	scheduleTime string
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewPostRecord builds a record for a submitted post. ID and sequence are
// assigned by the repository on Create.
func NewPostRecord(title, category string, platforms []string, status string) *PostRecord {
	now := time.Now()
	return &PostRecord{
		title:     title,
		category:  category,
		platforms: platforms,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *PostRecord) ID() string            { return p.id }
func (p *PostRecord) Sequence() int         { return p.sequence }
func (p *PostRecord) Title() string         { return p.title }
func (p *PostRecord) Category() string      { return p.category }
func (p *PostRecord) Platforms() []string   { return p.platforms }
func (p *PostRecord) Description() string   { return p.description }
func (p *PostRecord) Hashtags() []string    { return p.hashtags }
func (p *PostRecord) Status() string        { return p.status }
func (p *PostRecord) ViralScore() int       { return p.viralScore }
func (p *PostRecord) ScheduleTime() string  { return p.scheduleTime }
func (p *PostRecord) CreatedAt() time.Time  { return p.createdAt }
func (p *PostRecord) UpdatedAt() time.Time  { return p.updatedAt }
func (p *PostRecord) DeletedAt() *time.Time { return p.deletedAt }

func (p *PostRecord) SetID(id string)              { p.id = id }
func (p *PostRecord) SetSequence(seq int)          { p.sequence = seq }
func (p *PostRecord) SetDescription(d string)      { p.description = d }
func (p *PostRecord) SetHashtags(h []string)       { p.hashtags = h }
func (p *PostRecord) SetStatus(s string)           { p.status = s }
func (p *PostRecord) SetViralScore(score int)      { p.viralScore = score }
func (p *PostRecord) SetScheduleTime(t string)     { p.scheduleTime = t }
func (p *PostRecord) SetCreatedAt(t time.Time)     { p.createdAt = t }
func (p *PostRecord) SetUpdatedAt(t time.Time)     { p.updatedAt = t }
func (p *PostRecord) SetDeletedAt(t *time.Time)    { p.deletedAt = t }

// Validate checks the record before persistence.
func (p *PostRecord) Validate() error {
	if p.id == "" {
		return fmt.Errorf("post record requires an id")
	}
	if p.title == "" {
		return fmt.Errorf("post record requires a title")
	}
	if len(p.platforms) == 0 {
		return fmt.Errorf("post record requires at least one platform")
	}
	if p.status == "" {
		return fmt.Errorf("post record requires a status")
	}
	return nil
}
