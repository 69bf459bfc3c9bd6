// Package ident generates the short identifiers used for quests and
// submissions. The shape is a one-character type prefix, a six-digit
// time fragment and a three-character random suffix, e.g. "Q482913KX2".
// Collisions are rare but possible; callers treat a unique-constraint
// violation on insert as the signal to regenerate.
package ident

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	QuestPrefix      = "Q"
	SubmissionPrefix = "S"

	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen      = 3
)

func New(prefix string) string {
	var b strings.Builder
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return fmt.Sprintf("%s%06d%s", prefix, time.Now().Unix()%1_000_000, b.String())
}

func NewQuestID() string {
	return New(QuestPrefix)
}

func NewSubmissionID() string {
	return New(SubmissionPrefix)
}
