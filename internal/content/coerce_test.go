package content

import (
	"testing"
)

func TestDecodeDocumentRejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"text"`, `42`, `null`, `not json`} {
		if _, err := DecodeDocument([]byte(body)); err == nil {
			t.Fatalf("expected error for body %s", body)
		}
	}
}

func TestDecodeDocumentBasicFields(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"subjectName": "Physics",
		"language": "en",
		"topics": [{"name": "Motion", "summary": "s", "coveragePercent": 30}]
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.SubjectName != "Physics" || doc.Language != "en" {
		t.Fatalf("scalar fields wrong: %+v", doc)
	}
	if len(doc.Topics) != 1 || doc.Topics[0].Name != "Motion" {
		t.Fatalf("topics wrong: %+v", doc.Topics)
	}
	if doc.Topics[0].CoveragePercent == nil || *doc.Topics[0].CoveragePercent != 30 {
		t.Fatalf("coverage wrong: %+v", doc.Topics[0].CoveragePercent)
	}
}

func TestDecodeDocumentWrongShapesDropped(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"subjectName": 99,
		"topics": "not a list",
		"nodes": ["not a map"],
		"tree": 7,
		"lastReviewed": {"A": 123, "B": "2026-03-01"}
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.SubjectName != "" {
		t.Fatalf("non-string subject should be absent: %q", doc.SubjectName)
	}
	if doc.Topics != nil {
		t.Fatalf("non-list topics should be absent: %+v", doc.Topics)
	}
	if doc.Nodes != nil {
		t.Fatalf("non-map nodes should be absent: %+v", doc.Nodes)
	}
	if doc.Tree != nil {
		t.Fatalf("non-map tree should be absent: %+v", doc.Tree)
	}
	if len(doc.LastReviewed) != 1 || doc.LastReviewed["B"] != "2026-03-01" {
		t.Fatalf("lastReviewed coercion wrong: %+v", doc.LastReviewed)
	}
}

func TestDecodeDocumentMissingCoverageStaysNil(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"topics": [{"name": "A"}, {"name": "B", "coveragePercent": "high"}]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.Topics[0].CoveragePercent != nil {
		t.Fatalf("absent coverage should stay nil: %+v", doc.Topics[0].CoveragePercent)
	}
	if doc.Topics[1].CoveragePercent != nil {
		t.Fatalf("non-numeric coverage should stay nil: %+v", doc.Topics[1].CoveragePercent)
	}
}

func TestDecodeDocumentNullLessonSlotsPreserved(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"nodes": {
			"Topic": {
				"overview": "o",
				"lessonsMeta": [null, {"title": "L2"}],
				"lessons": [null, {"title": "L2", "body": "b2"}]
			}
		}
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	node := doc.Nodes["Topic"]
	if node == nil {
		t.Fatalf("node missing: %+v", doc.Nodes)
	}
	if len(node.Lessons) != 2 || node.Lessons[0] != nil {
		t.Fatalf("null lesson slot not preserved: %+v", node.Lessons)
	}
	if node.Lessons[1] == nil || node.Lessons[1].Body != "b2" {
		t.Fatalf("present lesson wrong: %+v", node.Lessons[1])
	}
	if len(node.LessonsMeta) != 2 || node.LessonsMeta[0] != nil || node.LessonsMeta[1].Title != "L2" {
		t.Fatalf("lessonsMeta alignment wrong: %+v", node.LessonsMeta)
	}
}

func TestDecodeDocumentLessonDetail(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"nodes": {
			"Topic": {
				"lessons": [{
					"title": "L1",
					"body": "b",
					"quiz": [{"question": "q", "options": ["x", "y"], "answer": "x"}],
					"userAnswers": ["x"],
					"quizResults": {"0": {"correct": true, "score": 1}},
					"flashcards": [{"front": "f", "back": "bk"}],
					"highlights": [{"text": "t", "start": 1, "end": 5}],
					"videos": [{"title": "v", "videoId": "abc"}]
				}]
			}
		}
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	lesson := doc.Nodes["Topic"].Lessons[0]
	if len(lesson.Quiz) != 1 || lesson.Quiz[0].Options[1] != "y" {
		t.Fatalf("quiz wrong: %+v", lesson.Quiz)
	}
	if len(lesson.UserAnswers) != 1 || lesson.UserAnswers[0] != "x" {
		t.Fatalf("userAnswers wrong: %+v", lesson.UserAnswers)
	}
	result, ok := lesson.QuizResults["0"]
	if !ok || !result.Correct || result.Score != 1 {
		t.Fatalf("quizResults wrong: %+v", lesson.QuizResults)
	}
	if len(lesson.Flashcards) != 1 || lesson.Flashcards[0].Back != "bk" {
		t.Fatalf("flashcards wrong: %+v", lesson.Flashcards)
	}
	if len(lesson.Highlights) != 1 || lesson.Highlights[0].End != 5 {
		t.Fatalf("highlights wrong: %+v", lesson.Highlights)
	}
	if len(lesson.Videos) != 1 || lesson.Videos[0].VideoID != "abc" {
		t.Fatalf("videos wrong: %+v", lesson.Videos)
	}
}

func TestDecodeDocumentTreeRecursion(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"tree": {"topics": [
			{"name": "Root", "subtopics": [
				{"name": "Child", "overview": "c"},
				"junk"
			]}
		]}
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.Tree == nil || len(doc.Tree.Topics) != 1 {
		t.Fatalf("tree wrong: %+v", doc.Tree)
	}
	root := doc.Tree.Topics[0]
	if len(root.Subtopics) != 1 || root.Subtopics[0].Name != "Child" {
		t.Fatalf("junk subtopic entry not dropped: %+v", root.Subtopics)
	}
}
