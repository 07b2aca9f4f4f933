package model

import "github.com/nstehr/serenity/serenity-core/hex"

// EventKind names an event for logging.
type EventKind string

const (
	KindDamaged   EventKind = "damaged"
	KindHit       EventKind = "hit"
	KindSaw       EventKind = "see"
	KindRadarEcho EventKind = "radarEcho"
	KindDetected  EventKind = "detected"
)

// Event is one observation from the previous round. The set of events is
// closed: the only implementations are the types below, and consumers handle
// them through EventVisitor so a new kind cannot be silently ignored.
type Event interface {
	Kind() EventKind
	Subject() int
	Accept(v EventVisitor) error
}

// EventVisitor must handle every event kind.
type EventVisitor interface {
	VisitDamaged(Damaged) error
	VisitHit(Hit) error
	VisitSaw(Saw) error
	VisitRadarEcho(RadarEcho) error
	VisitDetected(Detected) error
}

// Damaged: one of our bots took cannon damage.
type Damaged struct {
	BotID  int
	Damage int
}

// Hit: a cannon shot from Source struck BotID, which may be ours or theirs.
type Hit struct {
	BotID  int
	Source int
}

// Saw: our bot Source spotted enemy bot BotID at Pos.
type Saw struct {
	BotID  int
	Source int
	Pos    hex.Position
}

// RadarEcho: a radar scan returned an echo at Pos.
type RadarEcho struct {
	BotID int
	Pos   hex.Position
}

// Detected: an enemy radar found our bot.
type Detected struct {
	BotID int
}

func (Damaged) Kind() EventKind   { return KindDamaged }
func (Hit) Kind() EventKind       { return KindHit }
func (Saw) Kind() EventKind       { return KindSaw }
func (RadarEcho) Kind() EventKind { return KindRadarEcho }
func (Detected) Kind() EventKind  { return KindDetected }

func (e Damaged) Subject() int   { return e.BotID }
func (e Hit) Subject() int       { return e.BotID }
func (e Saw) Subject() int       { return e.Source }
func (e RadarEcho) Subject() int { return e.BotID }
func (e Detected) Subject() int  { return e.BotID }

func (e Damaged) Accept(v EventVisitor) error   { return v.VisitDamaged(e) }
func (e Hit) Accept(v EventVisitor) error       { return v.VisitHit(e) }
func (e Saw) Accept(v EventVisitor) error       { return v.VisitSaw(e) }
func (e RadarEcho) Accept(v EventVisitor) error { return v.VisitRadarEcho(e) }
func (e Detected) Accept(v EventVisitor) error  { return v.VisitDetected(e) }
