package speech

import (
	"errors"
	"fmt"
)

var (
	ErrOrdering            = errors.New("words not sorted by start time")
	ErrNoSubstantiveSpeech = errors.New("no substantive speech found")
	ErrEmptyInput          = errors.New("no words supplied")
	ErrMixedSpeakers       = errors.New("words belong to more than one speaker")
	ErrNegativeTimestamp   = errors.New("timestamp precedes speech start")
	ErrForeignWord         = errors.New("word does not belong to speech")
	ErrUnboundOffset       = errors.New("timestamp offset not bound to a speech")
)

// OrderingError points at the first word that starts before its predecessor.
type OrderingError struct {
	Speaker     string
	Index       int
	PrevStartMs int64
	StartMs     int64
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("speaker %s word %d starts at %dms before previous start %dms: %v",
		e.Speaker, e.Index, e.StartMs, e.PrevStartMs, ErrOrdering)
}

func (e *OrderingError) Is(target error) bool {
	return target == ErrOrdering
}
