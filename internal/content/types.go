package content

// CourseDocument is the full persisted course record for one
// (owner, slug) pair. Clients submit partial or full documents as loose
// JSON; every field here is optional on the wire and absence means
// "not touched by this client", never "cleared".
type CourseDocument struct {
	SubjectName  string                  `json:"subjectName,omitempty"`
	Language     string                  `json:"language,omitempty"`
	Icon         string                  `json:"icon,omitempty"`
	CourseNotes  string                  `json:"courseNotes,omitempty"`
	QuickSummary string                  `json:"quickSummary,omitempty"`
	Topics       []TopicSummary          `json:"topics,omitempty"`
	Tree         *TopicTree              `json:"tree,omitempty"`
	Nodes        map[string]*NodeContent `json:"nodes,omitempty"`
	ExamDates    []ExamDate              `json:"examDates,omitempty"`
	ReviewQueue  []ReviewEntry           `json:"reviewQueue,omitempty"`
	PracticeLog  []PracticeEntry         `json:"practiceLog,omitempty"`
	SessionLog   []SessionEntry          `json:"sessionLog,omitempty"`
	LastReviewed map[string]string       `json:"lastReviewed,omitempty"`
	UpdatedAt    string                  `json:"updatedAt,omitempty"`
}

// TopicSummary is one entry of the flat top-level topic list, keyed by
// Name. CoveragePercent is a pointer so that an explicit 0 from a
// client is distinguishable from the field being absent.
type TopicSummary struct {
	Name            string   `json:"name"`
	Summary         string   `json:"summary,omitempty"`
	CoveragePercent *float64 `json:"coveragePercent,omitempty"`
}

// TopicTree is the legacy hierarchical topic representation.
type TopicTree struct {
	Topics []*TopicTreeNode `json:"topics,omitempty"`
}

type TopicTreeNode struct {
	Name      string           `json:"name"`
	Overview  string           `json:"overview,omitempty"`
	Subtopics []*TopicTreeNode `json:"subtopics,omitempty"`
}

// NodeContent is the generated study material for one topic or
// subtopic. LessonsMeta and Lessons are sparse, index-aligned lists:
// a nil slot means "not yet generated", not "empty lesson".
type NodeContent struct {
	Overview    string        `json:"overview,omitempty"`
	Symbols     []SymbolEntry `json:"symbols,omitempty"`
	LessonsMeta []*LessonMeta `json:"lessonsMeta,omitempty"`
	Lessons     []*LessonSlot `json:"lessons,omitempty"`
}

type SymbolEntry struct {
	Symbol  string `json:"symbol"`
	Meaning string `json:"meaning,omitempty"`
}

// LessonMeta is the planned descriptor for the lesson at the same
// index in NodeContent.Lessons.
type LessonMeta struct {
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// LessonSlot is one generated lesson. QuizResults is keyed by the
// string form of the question index.
type LessonSlot struct {
	Title       string                 `json:"title,omitempty"`
	Body        string                 `json:"body,omitempty"`
	Quiz        []QuizQuestion         `json:"quiz,omitempty"`
	UserAnswers []string               `json:"userAnswers,omitempty"`
	QuizResults map[string]GradeResult `json:"quizResults,omitempty"`
	Flashcards  []Flashcard            `json:"flashcards,omitempty"`
	Highlights  []Highlight            `json:"highlights,omitempty"`
	Videos      []VideoRef             `json:"videos,omitempty"`
	CreatedAt   string                 `json:"createdAt,omitempty"`
	UpdatedAt   string                 `json:"updatedAt,omitempty"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type GradeResult struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score,omitempty"`
	Feedback string  `json:"feedback,omitempty"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back,omitempty"`
}

type Highlight struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

type VideoRef struct {
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	VideoID string `json:"videoId,omitempty"`
}

type ExamDate struct {
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

// ReviewEntry is one spaced-repetition schedule row for a topic.
type ReviewEntry struct {
	Topic    string  `json:"topic"`
	Due      string  `json:"due,omitempty"`
	Interval int     `json:"interval,omitempty"`
	Ease     float64 `json:"ease,omitempty"`
}

type PracticeEntry struct {
	Topic string  `json:"topic"`
	At    string  `json:"at,omitempty"`
	Score float64 `json:"score,omitempty"`
}

type SessionEntry struct {
	At     string `json:"at,omitempty"`
	Action string `json:"action,omitempty"`
}
