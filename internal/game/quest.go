package game

import "time"

// Default quest field values applied when a spec leaves them empty.
const (
	defaultQuestDescription = "Complete this quest"
	defaultQuestDestination = "house"
)

// QuestSpec is the declarative authoring payload consumed by CreateQuest.
type QuestSpec struct {
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	Destination   string  `json:"destination" yaml:"destination"`
	StatChanges   Stats   `json:"statChanges" yaml:"stat_changes"`
	ScoreIncrease int     `json:"scoreIncrease" yaml:"score_increase"`
}

// Quest is a location-bound task with stat and score rewards. A quest
// lives in exactly one of the three lifecycle buckets; IsActive and
// IsCompleted always agree with the bucket holding it.
type Quest struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	Destination   string    `json:"destination"`
	StatChanges   Stats     `json:"statChanges"`
	ScoreIncrease int       `json:"scoreIncrease"`
	IsActive      bool      `json:"isActive"`
	IsCompleted   bool      `json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
	CompletedAt   time.Time `json:"completedAt,omitempty"`
}

// QuestLog holds the three lifecycle buckets and the id counter.
type QuestLog struct {
	Available []Quest `json:"availableQuests"`
	Active    []Quest `json:"activeQuests"`
	Completed []Quest `json:"completedQuests"`
	NextID    int     `json:"questIdCounter"`
}

func newQuestLog() QuestLog {
	return QuestLog{NextID: 1}
}

func (l QuestLog) clone() QuestLog {
	out := QuestLog{NextID: l.NextID}
	out.Available = append([]Quest(nil), l.Available...)
	out.Active = append([]Quest(nil), l.Active...)
	out.Completed = append([]Quest(nil), l.Completed...)
	return out
}

// newQuest materializes a spec into an Available quest, assigning the next
// id from the monotonic counter.
func (l *QuestLog) newQuest(spec QuestSpec, now time.Time) Quest {
	title := spec.Title
	if title == "" {
		title = "Untitled Quest"
	}
	description := spec.Description
	if description == "" {
		description = defaultQuestDescription
	}
	destination := spec.Destination
	if destination == "" {
		destination = defaultQuestDestination
	}
	quest := Quest{
		ID:            l.NextID,
		Title:         title,
		Description:   description,
		X:             spec.X,
		Y:             spec.Y,
		Destination:   destination,
		StatChanges:   spec.StatChanges,
		ScoreIncrease: spec.ScoreIncrease,
		CreatedAt:     now,
	}
	l.NextID++
	l.Available = append(l.Available, quest)
	return quest
}

// take removes and returns the quest with the given id from a bucket.
func take(bucket []Quest, id int) ([]Quest, Quest, bool) {
	for i, q := range bucket {
		if q.ID == id {
			out := append(append([]Quest(nil), bucket[:i]...), bucket[i+1:]...)
			return out, q, true
		}
	}
	return bucket, Quest{}, false
}

// find returns a quest by id from a bucket without removing it.
func find(bucket []Quest, id int) (Quest, bool) {
	for _, q := range bucket {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}
