package domain

import (
	"github.com/ymorita/studylog/internal/domain/journal"
)

type Theme = journal.Theme
type LearningLogEntry = journal.LearningLogEntry
type MetaNote = journal.MetaNote
type MetaNoteTheme = journal.MetaNoteTheme
type MetaNoteDetail = journal.MetaNoteDetail
type RelatedLogRef = journal.RelatedLogRef
type ThemeRef = journal.ThemeRef

type State = journal.State
type Category = journal.Category
type Date = journal.Date

const (
	StateActive   = journal.StateActive
	StateArchived = journal.StateArchived
	StateDeleted  = journal.StateDeleted

	CategoryInsight  = journal.CategoryInsight
	CategoryQuestion = journal.CategoryQuestion
	CategoryEmotion  = journal.CategoryEmotion
)
