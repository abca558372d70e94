package content

import (
	"encoding/json"
	"fmt"
)

// DecodeDocument parses a client-submitted JSON body into a typed
// CourseDocument. Only a body that is not a JSON object at the top
// level is an error; inside the document, any field with an unexpected
// shape is coerced to absent so a malformed partial upload degrades to
// "nothing merged for that field" instead of failing the request.
func DecodeDocument(data []byte) (*CourseDocument, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode course document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode course document: body is not an object")
	}
	return CoerceDocument(raw), nil
}

// CoerceDocument builds a typed document from a loosely-typed JSON
// object, dropping anything that does not match the expected shape.
func CoerceDocument(raw map[string]any) *CourseDocument {
	doc := &CourseDocument{
		SubjectName:  asString(raw["subjectName"]),
		Language:     asString(raw["language"]),
		Icon:         asString(raw["icon"]),
		CourseNotes:  asString(raw["courseNotes"]),
		QuickSummary: asString(raw["quickSummary"]),
		UpdatedAt:    asString(raw["updatedAt"]),
	}

	for _, v := range asSlice(raw["topics"]) {
		m := asMap(v)
		if m == nil {
			continue
		}
		doc.Topics = append(doc.Topics, coerceTopicSummary(m))
	}

	if tm := asMap(raw["tree"]); tm != nil {
		tree := &TopicTree{}
		for _, v := range asSlice(tm["topics"]) {
			if n := coerceTreeNode(asMap(v)); n != nil {
				tree.Topics = append(tree.Topics, n)
			}
		}
		if len(tree.Topics) > 0 {
			doc.Tree = tree
		}
	}

	if nm := asMap(raw["nodes"]); nm != nil {
		nodes := make(map[string]*NodeContent, len(nm))
		for k, v := range nm {
			m := asMap(v)
			if m == nil {
				continue
			}
			nodes[k] = coerceNodeContent(m)
		}
		if len(nodes) > 0 {
			doc.Nodes = nodes
		}
	}

	for _, v := range asSlice(raw["examDates"]) {
		if m := asMap(v); m != nil {
			doc.ExamDates = append(doc.ExamDates, ExamDate{
				Name: asString(m["name"]),
				Date: asString(m["date"]),
			})
		}
	}
	for _, v := range asSlice(raw["reviewQueue"]) {
		if m := asMap(v); m != nil {
			doc.ReviewQueue = append(doc.ReviewQueue, ReviewEntry{
				Topic:    asString(m["topic"]),
				Due:      asString(m["due"]),
				Interval: asInt(m["interval"]),
				Ease:     asFloat(m["ease"]),
			})
		}
	}
	for _, v := range asSlice(raw["practiceLog"]) {
		if m := asMap(v); m != nil {
			doc.PracticeLog = append(doc.PracticeLog, PracticeEntry{
				Topic: asString(m["topic"]),
				At:    asString(m["at"]),
				Score: asFloat(m["score"]),
			})
		}
	}
	for _, v := range asSlice(raw["sessionLog"]) {
		if m := asMap(v); m != nil {
			doc.SessionLog = append(doc.SessionLog, SessionEntry{
				At:     asString(m["at"]),
				Action: asString(m["action"]),
			})
		}
	}

	if lm := asMap(raw["lastReviewed"]); lm != nil {
		last := make(map[string]string, len(lm))
		for k, v := range lm {
			if s := asString(v); s != "" {
				last[k] = s
			}
		}
		if len(last) > 0 {
			doc.LastReviewed = last
		}
	}

	return doc
}

func coerceTopicSummary(m map[string]any) TopicSummary {
	t := TopicSummary{
		Name:    asString(m["name"]),
		Summary: asString(m["summary"]),
	}
	if f, ok := asFloatOK(m["coveragePercent"]); ok {
		t.CoveragePercent = &f
	}
	return t
}

func coerceTreeNode(m map[string]any) *TopicTreeNode {
	if m == nil {
		return nil
	}
	n := &TopicTreeNode{
		Name:     asString(m["name"]),
		Overview: asString(m["overview"]),
	}
	for _, v := range asSlice(m["subtopics"]) {
		if child := coerceTreeNode(asMap(v)); child != nil {
			n.Subtopics = append(n.Subtopics, child)
		}
	}
	return n
}

func coerceNodeContent(m map[string]any) *NodeContent {
	n := &NodeContent{Overview: asString(m["overview"])}
	for _, v := range asSlice(m["symbols"]) {
		if sm := asMap(v); sm != nil {
			n.Symbols = append(n.Symbols, SymbolEntry{
				Symbol:  asString(sm["symbol"]),
				Meaning: asString(sm["meaning"]),
			})
		}
	}
	for _, v := range asSlice(m["lessonsMeta"]) {
		mm := asMap(v)
		if mm == nil {
			// null or junk keeps the slot sparse, index alignment with
			// lessons depends on it
			n.LessonsMeta = append(n.LessonsMeta, nil)
			continue
		}
		n.LessonsMeta = append(n.LessonsMeta, &LessonMeta{
			Title:   asString(mm["title"]),
			Summary: asString(mm["summary"]),
		})
	}
	for _, v := range asSlice(m["lessons"]) {
		lm := asMap(v)
		if lm == nil {
			n.Lessons = append(n.Lessons, nil)
			continue
		}
		n.Lessons = append(n.Lessons, coerceLessonSlot(lm))
	}
	return n
}

func coerceLessonSlot(m map[string]any) *LessonSlot {
	l := &LessonSlot{
		Title:     asString(m["title"]),
		Body:      asString(m["body"]),
		CreatedAt: asString(m["createdAt"]),
		UpdatedAt: asString(m["updatedAt"]),
	}
	for _, v := range asSlice(m["quiz"]) {
		if qm := asMap(v); qm != nil {
			l.Quiz = append(l.Quiz, QuizQuestion{
				Question:    asString(qm["question"]),
				Options:     asStringSlice(qm["options"]),
				Answer:      asString(qm["answer"]),
				Explanation: asString(qm["explanation"]),
			})
		}
	}
	l.UserAnswers = asStringSlice(m["userAnswers"])
	if rm := asMap(m["quizResults"]); rm != nil {
		results := make(map[string]GradeResult, len(rm))
		for k, v := range rm {
			gm := asMap(v)
			if gm == nil {
				continue
			}
			results[k] = GradeResult{
				Correct:  asBool(gm["correct"]),
				Score:    asFloat(gm["score"]),
				Feedback: asString(gm["feedback"]),
			}
		}
		if len(results) > 0 {
			l.QuizResults = results
		}
	}
	for _, v := range asSlice(m["flashcards"]) {
		if fm := asMap(v); fm != nil {
			l.Flashcards = append(l.Flashcards, Flashcard{
				Front: asString(fm["front"]),
				Back:  asString(fm["back"]),
			})
		}
	}
	for _, v := range asSlice(m["highlights"]) {
		if hm := asMap(v); hm != nil {
			l.Highlights = append(l.Highlights, Highlight{
				Text:  asString(hm["text"]),
				Color: asString(hm["color"]),
				Start: asInt(hm["start"]),
				End:   asInt(hm["end"]),
			})
		}
	}
	for _, v := range asSlice(m["videos"]) {
		if vm := asMap(v); vm != nil {
			l.Videos = append(l.Videos, VideoRef{
				Title:   asString(vm["title"]),
				URL:     asString(vm["url"]),
				VideoID: asString(vm["videoId"]),
			})
		}
	}
	return l
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	raw := asSlice(v)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s, ok := e.(string)
		if !ok {
			s = ""
		}
		out = append(out, s)
	}
	return out
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	f, _ := asFloatOK(v)
	return f
}

func asFloatOK(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asInt(v any) int {
	f, ok := asFloatOK(v)
	if !ok {
		return 0
	}
	return int(f)
}
