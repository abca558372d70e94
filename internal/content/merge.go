package content

import "strings"

// maxSessionLogEntries bounds the per-document session log; older
// entries fall off the front when a merge would exceed it.
const maxSessionLogEntries = 200

// Merge combines an existing persisted document with an incoming
// client-submitted document. It is a pure function and the single
// authority for reconciling documents: callers must never overwrite
// nodes, topics, or the tree directly.
//
// The rules bias toward "no silent deletion": anything present in the
// existing document and absent from the incoming one is carried
// forward unchanged, while fields the incoming client actually touched
// win. A nil existing document (first write) yields the incoming
// document unchanged.
func Merge(existing, incoming *CourseDocument) *CourseDocument {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}

	out := *incoming
	out.SubjectName = mergeString(existing.SubjectName, incoming.SubjectName)
	out.Language = mergeString(existing.Language, incoming.Language)
	out.Icon = mergeString(existing.Icon, incoming.Icon)
	out.CourseNotes = mergeString(existing.CourseNotes, incoming.CourseNotes)
	out.QuickSummary = mergeString(existing.QuickSummary, incoming.QuickSummary)
	out.UpdatedAt = mergeString(existing.UpdatedAt, incoming.UpdatedAt)

	out.Nodes = mergeNodes(existing.Nodes, incoming.Nodes)
	out.Topics = mergeTopicSummaries(existing.Topics, incoming.Topics)
	out.Tree = mergeTree(existing.Tree, incoming.Tree)

	out.ExamDates = guardList(existing.ExamDates, incoming.ExamDates)
	out.ReviewQueue = guardList(existing.ReviewQueue, incoming.ReviewQueue)
	out.PracticeLog = guardList(existing.PracticeLog, incoming.PracticeLog)
	out.LastReviewed = mergeStringMap(existing.LastReviewed, incoming.LastReviewed)

	out.SessionLog = guardList(existing.SessionLog, incoming.SessionLog)
	if len(out.SessionLog) > maxSessionLogEntries {
		out.SessionLog = out.SessionLog[len(out.SessionLog)-maxSessionLogEntries:]
	}

	return &out
}

// mergeString keeps the existing value when the incoming one is absent
// (empty). A client that never loaded a field echoes it back empty and
// must not wipe it.
func mergeString(existing, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}

// guardList treats an exactly-empty incoming list as "client never
// touched this field" and keeps the existing entries. A shorter but
// non-empty incoming list is an intentional edit and wins outright.
func guardList[T any](existing, incoming []T) []T {
	if len(incoming) == 0 && len(existing) > 0 {
		return existing
	}
	return incoming
}

func mergeStringMap(existing, incoming map[string]string) map[string]string {
	if len(existing) == 0 {
		return incoming
	}
	if len(incoming) == 0 {
		return existing
	}
	out := make(map[string]string, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		out[k] = v
	}
	return out
}

// mergeNodes unions the per-topic content maps. Only keys the incoming
// document mentions are merged; every other existing key is carried
// through untouched, so a client holding a stale snapshot cannot drop
// a topic generated elsewhere.
func mergeNodes(existing, incoming map[string]*NodeContent) map[string]*NodeContent {
	if len(existing) == 0 {
		return incoming
	}
	out := make(map[string]*NodeContent, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		if prev, ok := existing[k]; ok {
			out[k] = mergeNodeContent(prev, v)
		} else {
			out[k] = v
		}
	}
	return out
}

// mergeNodeContent combines one topic's generated material.
func mergeNodeContent(existing, incoming *NodeContent) *NodeContent {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	out := *incoming
	out.Overview = mergeString(existing.Overview, incoming.Overview)
	out.Symbols = guardList(existing.Symbols, incoming.Symbols)
	if len(existing.LessonsMeta) > 0 || len(incoming.LessonsMeta) > 0 {
		out.LessonsMeta = mergeSparseList(existing.LessonsMeta, incoming.LessonsMeta, takeIncoming[LessonMeta])
	}
	if len(existing.Lessons) > 0 || len(incoming.Lessons) > 0 {
		out.Lessons = mergeSparseList(existing.Lessons, incoming.Lessons, mergeLessonSlot)
	}
	return &out
}

// mergeSparseList walks both lists index by index up to the longer
// length. An absent (nil) incoming slot keeps the existing slot; an
// absent existing slot takes the incoming one; when both are present
// the item merger decides.
func mergeSparseList[T any](existing, incoming []*T, mergeItem func(e, i *T) *T) []*T {
	n := max(len(existing), len(incoming))
	out := make([]*T, n)
	for j := 0; j < n; j++ {
		var e, i *T
		if j < len(existing) {
			e = existing[j]
		}
		if j < len(incoming) {
			i = incoming[j]
		}
		switch {
		case i == nil:
			out[j] = e
		case e == nil:
			out[j] = i
		default:
			out[j] = mergeItem(e, i)
		}
	}
	return out
}

func takeIncoming[T any](_, incoming *T) *T {
	return incoming
}

// mergeLessonSlot shallow-merges two present lessons (incoming wins)
// and then restores the existing value wherever the incoming one looks
// truncated: an empty body or an exactly-empty collection is what a
// client echoes back when it loaded the document before this lesson
// finished generating elsewhere. The guard is deliberately narrow so
// that a legitimate shrinking edit (user deletes one flashcard) still
// wins.
func mergeLessonSlot(existing, incoming *LessonSlot) *LessonSlot {
	out := *incoming
	out.Title = mergeString(existing.Title, incoming.Title)
	out.CreatedAt = mergeString(existing.CreatedAt, incoming.CreatedAt)
	out.UpdatedAt = mergeString(existing.UpdatedAt, incoming.UpdatedAt)
	if strings.TrimSpace(incoming.Body) == "" && strings.TrimSpace(existing.Body) != "" {
		out.Body = existing.Body
	}
	out.Quiz = guardList(existing.Quiz, incoming.Quiz)
	out.UserAnswers = guardList(existing.UserAnswers, incoming.UserAnswers)
	out.Flashcards = guardList(existing.Flashcards, incoming.Flashcards)
	out.Highlights = guardList(existing.Highlights, incoming.Highlights)
	out.Videos = guardList(existing.Videos, incoming.Videos)
	if len(incoming.QuizResults) == 0 && len(existing.QuizResults) > 0 {
		out.QuizResults = existing.QuizResults
	}
	return &out
}

// mergeTopicSummaries is a key-based union over the flat topic list:
// existing entries keep their order, overlapping names shallow-merge
// with incoming fields winning, and names only the incoming side knows
// are appended in incoming order.
func mergeTopicSummaries(existing, incoming []TopicSummary) []TopicSummary {
	if len(existing) == 0 {
		return incoming
	}
	if len(incoming) == 0 {
		return existing
	}
	index := make(map[string]int, len(existing))
	out := make([]TopicSummary, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	for i, t := range existing {
		index[t.Name] = i
	}
	for _, t := range incoming {
		if i, ok := index[t.Name]; ok {
			out[i] = mergeTopicSummary(out[i], t)
		} else {
			index[t.Name] = len(out)
			out = append(out, t)
		}
	}
	return out
}

func mergeTopicSummary(existing, incoming TopicSummary) TopicSummary {
	out := incoming
	out.Summary = mergeString(existing.Summary, incoming.Summary)
	if out.CoveragePercent == nil {
		out.CoveragePercent = existing.CoveragePercent
	}
	return out
}

func mergeTree(existing, incoming *TopicTree) *TopicTree {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	return &TopicTree{Topics: mergeTreeNodeLists(existing.Topics, incoming.Topics)}
}

// mergeTreeNodeLists applies the same keyed-collection rule at every
// depth of the legacy topic tree.
func mergeTreeNodeLists(existing, incoming []*TopicTreeNode) []*TopicTreeNode {
	if len(existing) == 0 {
		return incoming
	}
	if len(incoming) == 0 {
		return existing
	}
	index := make(map[string]int, len(existing))
	out := make([]*TopicTreeNode, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	for i, n := range existing {
		if n != nil {
			index[n.Name] = i
		}
	}
	for _, n := range incoming {
		if n == nil {
			continue
		}
		if i, ok := index[n.Name]; ok {
			out[i] = mergeTreeNode(out[i], n)
		} else {
			index[n.Name] = len(out)
			out = append(out, n)
		}
	}
	return out
}

// mergeTreeNode shallow-merges one tree node and recurses into its
// subtopics. An incoming edit that only touched the overview carries
// the existing subtopic list forward.
func mergeTreeNode(existing, incoming *TopicTreeNode) *TopicTreeNode {
	out := *incoming
	out.Overview = mergeString(existing.Overview, incoming.Overview)
	if incoming.Subtopics == nil {
		out.Subtopics = existing.Subtopics
	} else {
		out.Subtopics = mergeTreeNodeLists(existing.Subtopics, incoming.Subtopics)
	}
	return &out
}
